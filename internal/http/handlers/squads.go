package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
)

const maxSquadBody = 64 << 10

type validateSquadRequest struct {
	Lines        []string    `json:"lines" validate:"required,min=1,max=50,dive,max=200"`
	Budget       json.Number `json:"budget,omitempty" validate:"omitempty,numeric"`
	EnforceRules *bool       `json:"enforce_rules,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationDetails renders validator failures as "field: rule" strings.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		detail := fe.Namespace()
		if _, rest, ok := strings.Cut(detail, "."); ok {
			detail = rest
		}
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", detail, fe.Tag(), fe.Param()))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", detail, fe.Tag()))
	}
	return out
}

// ValidateSquad resolves the posted lines and checks the squad. Rules are
// enforced unless enforce_rules is false.
func (h *Handler) ValidateSquad(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var body validateSquadRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSquadBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger, err.Error())
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request", h.logger, validationDetails(err)...)
		return
	}

	req := squads.Request{Lines: body.Lines, EnforceRules: true}
	if body.EnforceRules != nil {
		req.EnforceRules = *body.EnforceRules
	}
	if body.Budget != "" {
		budget, err := decimal.NewFromString(body.Budget.String())
		if err != nil || !budget.IsPositive() {
			writeError(w, r, http.StatusBadRequest, "budget must be a positive number", h.logger)
			return
		}
		req.Budget = &budget
	}

	res, err := h.squads.Validate(r.Context(), req)
	switch {
	case errors.Is(err, squads.ErrNoLines):
		writeError(w, r, http.StatusBadRequest, "no squad lines", h.logger)
		return
	case err != nil:
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res, h.logger)
}
