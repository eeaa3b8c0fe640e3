package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// MaxUploadBytes is enforced client-side before any network call.
const MaxUploadBytes = 5 << 20

var allowedUploadTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"application/pdf": {},
}

type VerifyState string

const (
	VerifyIdle         VerifyState = "idle"
	VerifyFileSelected VerifyState = "fileSelected"
	VerifyProcessing   VerifyState = "processing"
	VerifyComparison   VerifyState = "comparison"
	VerifyError        VerifyState = "error"
)

// FieldComparison is one row of the match/mismatch table.
type FieldComparison struct {
	Field   string
	Entered string
	Scanned string
	Match   bool
}

// VerifyFlow walks a document upload through OCR and compares the extracted
// fields against what the user entered in their profile.
type VerifyFlow struct {
	backend OCRBackend
	log     *zap.Logger

	mu          sync.Mutex
	state       VerifyState
	fileName    string
	contentType string
	fileSize    int64
	errMessage  string
	docType     string
	rows        []FieldComparison
}

func NewVerifyFlow(backend OCRBackend, logger *zap.Logger) *VerifyFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerifyFlow{backend: backend, log: logger, state: VerifyIdle}
}

func (v *VerifyFlow) State() VerifyState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *VerifyFlow) ErrorMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMessage
}

func (v *VerifyFlow) DocumentType() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.docType
}

// Comparison returns the rows of the match table once in the comparison state.
func (v *VerifyFlow) Comparison() []FieldComparison {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]FieldComparison, len(v.rows))
	copy(out, v.rows)
	return out
}

// SelectFile validates the pick client-side. Oversized or wrong-typed files
// are rejected here, before any upload happens.
func (v *VerifyFlow) SelectFile(name, contentType string, size int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == VerifyProcessing {
		return NewBusyError("a scan is already in progress")
	}
	if size > MaxUploadBytes {
		v.state = VerifyError
		v.errMessage = "File too large (maximum 5 MB)"
		return NewInvalidError(v.errMessage)
	}
	if _, ok := allowedUploadTypes[strings.ToLower(contentType)]; !ok {
		v.state = VerifyError
		v.errMessage = "Unsupported file type (use PNG, JPG or PDF)"
		return NewInvalidError(v.errMessage)
	}
	v.state = VerifyFileSelected
	v.fileName = name
	v.contentType = contentType
	v.fileSize = size
	v.errMessage = ""
	return nil
}

// Upload sends the selected file to the OCR endpoint and builds the
// comparison table against the entered profile.
func (v *VerifyFlow) Upload(ctx context.Context, file io.Reader, entered *models.SchemeFormData) error {
	v.mu.Lock()
	if v.state != VerifyFileSelected {
		v.mu.Unlock()
		return NewInvalidError("no file selected")
	}
	v.state = VerifyProcessing
	name, ctype := v.fileName, v.contentType
	v.mu.Unlock()

	res, err := v.backend.OCR(ctx, name, ctype, file)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = VerifyError
		v.errMessage = "Could not scan the document. Please try again."
		v.log.Warn("ocr upload failed", zap.String("file", name), zap.Error(err))
		return err
	}
	if !res.Success || res.ExtractedFields == nil {
		v.state = VerifyError
		v.errMessage = res.Message
		if v.errMessage == "" {
			v.errMessage = "No readable fields were found in the document."
		}
		return NewInvalidError(v.errMessage)
	}
	v.docType = res.ExtractedFields.DocumentType
	if v.docType == "" {
		v.docType = res.DocumentType
	}
	v.rows = compareFields(entered, res.ExtractedFields)
	v.state = VerifyComparison
	return nil
}

// Rescan discards the current result and returns to idle.
func (v *VerifyFlow) Rescan() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = VerifyIdle
	v.fileName, v.contentType, v.fileSize = "", "", 0
	v.errMessage, v.docType = "", ""
	v.rows = nil
}

// compareFields lines up entered profile values against scanned ones using
// case-insensitive trimmed comparison. Rows with nothing scanned are skipped.
func compareFields(entered *models.SchemeFormData, scanned *models.ExtractedFields) []FieldComparison {
	var rows []FieldComparison
	add := func(field, enteredVal, scannedVal string) {
		if strings.TrimSpace(scannedVal) == "" {
			return
		}
		rows = append(rows, FieldComparison{
			Field:   field,
			Entered: enteredVal,
			Scanned: scannedVal,
			Match:   valuesMatch(enteredVal, scannedVal),
		})
	}
	if entered == nil {
		entered = &models.SchemeFormData{}
	}
	add("Name", entered.FullName, scanned.Name)
	if scanned.Age != nil {
		enteredAge := ""
		if entered.Age != nil {
			enteredAge = strconv.Itoa(*entered.Age)
		}
		add("Age", enteredAge, strconv.Itoa(*scanned.Age))
	}
	add("Gender", strVal(entered.Gender), scanned.Gender)
	add("Category", strVal(entered.Category), scanned.Category)
	if scanned.AnnualIncome != nil {
		enteredInc := ""
		if entered.AnnualIncome != nil {
			enteredInc = strconv.Itoa(*entered.AnnualIncome)
		}
		add("Annual income", enteredInc, strconv.Itoa(*scanned.AnnualIncome))
	}
	return rows
}

func valuesMatch(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Summary renders a one-line result for logs and the status bar.
func (v *VerifyFlow) Summary() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != VerifyComparison {
		return string(v.state)
	}
	matched := 0
	for _, r := range v.rows {
		if r.Match {
			matched++
		}
	}
	return fmt.Sprintf("%s: %d/%d fields match", v.docType, matched, len(v.rows))
}
