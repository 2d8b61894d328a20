package server

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/wordexam/internal/database"
	"github.com/at-ishikawa/wordexam/internal/memory"
)

const errorDomain = "wordexam"

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest reports every invalid field as a BadRequest detail.
func validateRequest(msg interface{}) *connect.Error {
	err := requestValidator.Struct(msg)
	if err == nil {
		return nil
	}

	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		var fieldViolations []*errdetails.BadRequest_FieldViolation
		for _, v := range valErrs {
			fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       fieldPath(v.Namespace()),
				Description: v.Error(),
			})
		}
		if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
			FieldViolations: fieldViolations,
		}); detailErr == nil {
			connectErr.AddDetail(detail)
		}
	}
	return connectErr
}

// fieldPath drops the request type from a namespace like "RecordVerdictRequest.entryId".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// toConnectError maps scheduler errors to Connect codes with an ErrorInfo reason.
func toConnectError(err error) *connect.Error {
	var code connect.Code
	var reason string
	switch {
	case errors.Is(err, database.ErrNotFound):
		code, reason = connect.CodeNotFound, "NOT_FOUND"
	case errors.Is(err, memory.ErrInvalidMode):
		code, reason = connect.CodeInvalidArgument, "INVALID_MODE"
	case errors.Is(err, memory.ErrInvalidVerdict):
		code, reason = connect.CodeInvalidArgument, "INVALID_VERDICT"
	case errors.Is(err, database.ErrConflict), database.IsRetryable(err):
		code, reason = connect.CodeAborted, "CONFLICT"
	default:
		code, reason = connect.CodeInternal, "INTERNAL"
	}

	connectErr := connect.NewError(code, err)
	if detail, detailErr := connect.NewErrorDetail(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: errorDomain,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// jsonCodec carries the plain Go messages of this package.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
