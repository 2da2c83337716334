package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc123")
	if RequestID(ctx) != "abc123" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}

	err := errors.New("boom")
	Time(ctx, "op.fail")(&err)
	Time(ctx, "op.ok")(nil)

	out := buf.String()
	if !strings.Contains(out, "req_id=abc123 op=op.fail") || !strings.Contains(out, "err=boom") {
		t.Errorf("missing failure line: %s", out)
	}
	if !strings.Contains(out, "req_id=abc123 op=op.ok dur=") {
		t.Errorf("missing success line: %s", out)
	}
}
