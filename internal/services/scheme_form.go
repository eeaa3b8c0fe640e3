package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// Scheme-finder field names, aligned with the backend payload.
const (
	FieldGender           = "gender"
	FieldAge              = "age"
	FieldState            = "state"
	FieldArea             = "area"
	FieldCategory         = "category"
	FieldIsDisabled       = "is_disabled"
	FieldIsMinority       = "is_minority"
	FieldIsStudent        = "is_student"
	FieldEmployment       = "employment_status"
	FieldIsGovtEmployee   = "is_govt_employee"
	FieldAnnualIncome     = "annual_income"
	FieldFamilyIncome     = "family_income"
)

// schemeField binds a logical field to its label key, its answered-check and
// its inline error message. Order matters: the first unanswered field gets
// flagged.
type schemeField struct {
	Name     string
	LabelKey string
	Message  string
	Answered func(*models.SchemeFormData) bool
}

// A false or zero answer is an answer. Only nil means unanswered.
var schemeFields = []schemeField{
	{FieldGender, "sf_lbl_gender", "Please select your gender", func(d *models.SchemeFormData) bool { return d.Gender != nil }},
	{FieldAge, "sf_lbl_age", "Please select your age", func(d *models.SchemeFormData) bool { return d.Age != nil }},
	{FieldState, "sf_lbl_state", "Please select your state", func(d *models.SchemeFormData) bool { return d.State != nil }},
	{FieldArea, "sf_lbl_area", "Please select your area type", func(d *models.SchemeFormData) bool { return d.Area != nil }},
	{FieldCategory, "sf_lbl_cat", "Please select your category", func(d *models.SchemeFormData) bool { return d.Category != nil }},
	{FieldIsDisabled, "sf_lbl_pwd", "Please answer the disability question", func(d *models.SchemeFormData) bool { return d.IsDisabled != nil }},
	{FieldIsMinority, "sf_lbl_minor", "Please answer the minority question", func(d *models.SchemeFormData) bool { return d.IsMinority != nil }},
	{FieldIsStudent, "sf_lbl_student", "Please answer the student question", func(d *models.SchemeFormData) bool { return d.IsStudent != nil }},
	{FieldEmployment, "sf_lbl_status", "Please select your employment status", func(d *models.SchemeFormData) bool { return d.EmploymentStatus != nil }},
	{FieldIsGovtEmployee, "sf_lbl_govt", "Please answer the government employee question", func(d *models.SchemeFormData) bool { return d.IsGovtEmployee != nil }},
	{FieldAnnualIncome, "sf_lbl_inc_ann", "Please enter your annual income", func(d *models.SchemeFormData) bool { return d.AnnualIncome != nil }},
	{FieldFamilyIncome, "sf_lbl_inc_fam", "Please enter your family income", func(d *models.SchemeFormData) bool { return d.FamilyIncome != nil }},
}

// SchemeForm is the scheme-finder wizard state. In create mode it also
// carries account credentials; edit mode hides that section, prefills from
// the server profile, and submits to the edit endpoint instead.
type SchemeForm struct {
	backend ProfileBackend
	log     *zap.Logger

	mu          sync.Mutex
	editMode    bool
	inFlight    bool
	Data        models.SchemeFormData
	fieldErrors map[string]string
	onSuccess   []func(*models.SchemeFormData)
}

func NewSchemeForm(backend ProfileBackend, logger *zap.Logger) *SchemeForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemeForm{backend: backend, log: logger, fieldErrors: map[string]string{}}
}

// Open resets the draft for a fresh run of the wizard.
func (s *SchemeForm) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = false
	s.Data = models.SchemeFormData{}
	s.fieldErrors = map[string]string{}
}

// OpenForEdit fetches the saved profile and prefills the draft.
func (s *SchemeForm) OpenForEdit(ctx context.Context) error {
	res, err := s.backend.GetProfile(ctx)
	if err != nil {
		return err
	}
	if res.Profile == nil {
		return NewNotFoundError("no saved profile")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = true
	s.Data = *res.Profile
	s.Data.Password = ""
	s.fieldErrors = map[string]string{}
	return nil
}

// EditMode reports whether the credential section is hidden.
func (s *SchemeForm) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

func (s *SchemeForm) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		out[k] = v
	}
	return out
}

// OnSuccess appends a post-submit hook. Hooks run in order after a
// successful submission; composition instead of function reassignment.
func (s *SchemeForm) OnSuccess(fn func(*models.SchemeFormData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSuccess = append(s.onSuccess, fn)
}

// Setters for the numeric fields; the wizard stores plain integers no matter
// what digit forms the UI displayed.

func (s *SchemeForm) SetAge(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 || n > 120 {
		return NewFieldError(FieldAge, "Age must be a number between 0 and 120")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data.Age = &n
	return nil
}

func (s *SchemeForm) SetAnnualIncome(raw string) error {
	return s.setIncome(raw, FieldAnnualIncome)
}

func (s *SchemeForm) SetFamilyIncome(raw string) error {
	return s.setIncome(raw, FieldFamilyIncome)
}

func (s *SchemeForm) setIncome(raw, field string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return NewFieldError(field, "Income must be a non-negative number")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case FieldAnnualIncome:
		s.Data.AnnualIncome = &n
	case FieldFamilyIncome:
		s.Data.FamilyIncome = &n
	}
	return nil
}

// ValidateFullForm checks every mandatory field and, in create mode, the
// account section. It flags the first unanswered field and stops there, so
// the UI can scroll one target into view.
func (s *SchemeForm) ValidateFullForm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *SchemeForm) validateLocked() bool {
	s.fieldErrors = map[string]string{}
	if !s.editMode {
		name := strings.TrimSpace(s.Data.FullName)
		if len([]rune(name)) < 2 {
			s.fieldErrors[FieldName] = "Please enter your name (at least 2 characters)"
			return false
		}
		if !emailRe.MatchString(strings.TrimSpace(s.Data.Email)) {
			s.fieldErrors[FieldEmail] = "Please enter a valid email address"
			return false
		}
		if len(s.Data.Password) < 6 {
			s.fieldErrors[FieldPassword] = "Password must be at least 6 characters"
			return false
		}
	}
	for _, fld := range schemeFields {
		if !fld.Answered(&s.Data) {
			s.fieldErrors[fld.Name] = fld.Message
			return false
		}
	}
	return true
}

// Submit validates and sends the draft: POST /profile in create mode,
// POST /edit in edit mode. Reentrant submits are rejected while one is in
// flight. On success the hooks run and the draft is considered consumed.
func (s *SchemeForm) Submit(ctx context.Context) (*ProfileResult, error) {
	s.mu.Lock()
	if !s.validateLocked() {
		s.mu.Unlock()
		return nil, NewInvalidError("fix the highlighted fields")
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, NewBusyError("submission already in progress")
	}
	s.inFlight = true
	edit := s.editMode
	payload := s.Data
	hooks := append([]func(*models.SchemeFormData){}, s.onSuccess...)
	s.mu.Unlock()

	var (
		res *ProfileResult
		err error
	)
	if edit {
		res, err = s.backend.UpdateProfile(ctx, &payload)
	} else {
		res, err = s.backend.SubmitProfile(ctx, &payload)
	}

	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("scheme form submit failed", zap.Bool("edit", edit), zap.Error(err))
		return nil, err
	}
	if !res.Success {
		return res, NewInvalidError(res.Message)
	}
	for _, fn := range hooks {
		fn(&payload)
	}
	return res, nil
}
