package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/middleware"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type jsonResponse map[string]interface{}

const maxUploadSize = 10 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// decodeAndValidate читает тело запроса и проверяет теги validate.
// Возвращает false, если ответ с ошибкой уже отправлен.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := readJSON(w, r, dst); err != nil {
		badRequestResponse(w, r, err)
		return false
	}
	if fieldErrors := validateInput(r, dst); fieldErrors != nil {
		failedValidationResponse(w, r, fieldErrors)
		return false
	}
	return true
}

func validateInput(r *http.Request, input interface{}) map[string]string {
	err := validate.StructCtx(r.Context(), input)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"body": err.Error()}
	}
	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.SplitN(fe.Namespace(), ".", 2)
		key := fe.Field()
		if len(field) == 2 {
			key = field[1]
		}
		if fe.Param() != "" {
			fieldErrors[key] = fmt.Sprintf("failed on '%s=%s'", fe.Tag(), fe.Param())
		} else {
			fieldErrors[key] = fmt.Sprintf("failed on '%s'", fe.Tag())
		}
	}
	return fieldErrors
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrAdminNotFound),
		errors.Is(err, services.ErrLeagueNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrNoLeagues):
		notFoundResponse(w, r, err.Error())

	case errors.Is(err, services.ErrAuthEmailTaken),
		errors.Is(err, services.ErrLeagueNameConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrMatchNumberConflict):
		conflictResponse(w, r, err.Error())

	// бизнес-правила
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrTeamCountMismatch),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrSquadTooSmall),
		errors.Is(err, services.ErrCoachInSquad),
		errors.Is(err, services.ErrCaptainRequired),
		errors.Is(err, services.ErrCaptainNotInSquad),
		errors.Is(err, services.ErrCaptainIsViceCaptain),
		errors.Is(err, services.ErrTeamNotInLeague),
		errors.Is(err, services.ErrSameTeams),
		errors.Is(err, services.ErrInvalidMatchStatus),
		errors.Is(err, services.ErrInvalidMatchType),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, brackets.ErrInvalidFormat),
		errors.Is(err, brackets.ErrInsufficientTeams),
		errors.Is(err, brackets.ErrDuplicateTeam),
		errors.Is(err, brackets.ErrInvalidDateRange):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrEmailNotVerified):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrUnsupportedMediaType):
		errorResponse(w, r, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

func currentPrincipal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current admin")
		return models.Principal{}, false
	}
	return principal, true
}

func urlParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		badRequestResponse(w, r, fmt.Errorf("missing %s in URL path", name))
		return "", false
	}
	return value, true
}

func queryBool(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s query parameter: %q", name, raw)
	}
	return v, nil
}
