package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"trucklogix-service/internal/adapters/backend"
	"trucklogix-service/internal/api/dto"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/timeline"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethods answers 405 with an Allow header unless r uses one of methods.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON reads exactly one JSON object with no unknown fields into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service and backend failures to HTTP answers.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		verrs domain.ValidationErrors
		pe    *timeline.ParseError
		ae    *backend.APIError
	)

	switch {
	case errors.As(err, &verrs):
		res := dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: make([]dto.FieldError, 0, len(verrs)),
		}
		for _, v := range verrs {
			res.Fields = append(res.Fields, dto.FieldError{Field: v.Field, Message: v.Message})
		}
		writeJSON(w, r, http.StatusBadRequest, res)
	case errors.As(err, &pe):
		writeError(w, r, http.StatusUnprocessableEntity, pe.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.As(err, &ae):
		log.Printf("%s failed: backend status=%d err=%v", op, ae.Status, err)
		writeError(w, r, http.StatusBadGateway, ae.Message)
	default:
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
