package wizard

import (
	"testing"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
)

func completeDraft() model.Application {
	return model.Application{
		FullName:       "Ayan Warsame",
		MotherName:     "Fadumo Warsame",
		Address:        "Taleh Street",
		PlaceOfBirth:   "Mogadishu",
		Email:          "ayan@example.com",
		Phone:          "0615551234",
		EmergencyPhone: "0615555678",
		SchoolName:     "Banadir Secondary",
		GraduationYear: "2024",
		Grade:          "A",
		Certificate:    &model.Attachment{Name: "certificate.pdf", Size: 1024},
		FacultyID:      "f1",
		DepartmentID:   "d1",
		Mode:           model.ModeFullTime,
		EntryDate:      "2026-09-01",
		PaymentMethod:  model.PaymentMethodEVC,
		EVCPhoneNumber: "0615551234",
	}
}

func completeMachine() *Machine {
	m := New()
	m.Draft = completeDraft()
	return m
}

func TestNewMachine(t *testing.T) {
	m := New()
	if m.ID == "" {
		t.Fatal("machine must get an id")
	}
	if m.Step != StepPersonalInfo {
		t.Fatalf("step = %d, want %d", m.Step, StepPersonalInfo)
	}
	other := New()
	if other.ID == m.ID {
		t.Fatal("ids must be unique")
	}
}

func TestNextBlockedByEmptyStep(t *testing.T) {
	m := New()
	if m.Next() {
		t.Fatal("empty personal info must not advance")
	}
	if m.Step != StepPersonalInfo {
		t.Fatalf("step moved to %d", m.Step)
	}
	want := map[string]string{
		"fullname":     "fullname is required",
		"motherName":   "Mother's name is required",
		"address":      "Address is required",
		"placeOfBirth": "Place of birth is required",
	}
	for field, msg := range want {
		if m.Errors[field] != msg {
			t.Fatalf("errors[%q] = %q, want %q", field, m.Errors[field], msg)
		}
	}
}

func TestNextAdvancesThroughAllSteps(t *testing.T) {
	m := completeMachine()
	for step := StepPersonalInfo; step < StepReview; step++ {
		if m.Step != step {
			t.Fatalf("at iteration for step %d, machine is on %d", step, m.Step)
		}
		if !m.Next() {
			t.Fatalf("step %d did not advance: %v", step, m.Errors)
		}
	}
	if m.Step != StepReview {
		t.Fatalf("final step = %d", m.Step)
	}
	// Review is the last step; Next is a no-op there.
	if !m.Next() || m.Step != StepReview {
		t.Fatalf("review step moved to %d", m.Step)
	}
}

func TestPrevNeverValidates(t *testing.T) {
	m := New()
	m.Step = StepContactInfo
	m.Prev()
	if m.Step != StepPersonalInfo {
		t.Fatalf("step = %d", m.Step)
	}
	if len(m.Errors) != 0 {
		t.Fatalf("prev added errors: %v", m.Errors)
	}
	m.Prev()
	if m.Step != StepPersonalInfo {
		t.Fatalf("prev below first step moved to %d", m.Step)
	}
}

func TestEmailValidation(t *testing.T) {
	draft := completeDraft()
	draft.Email = "not-an-email"
	errs := Validate(StepContactInfo, draft)
	if errs["email"] != "Email is invalid" {
		t.Fatalf("errors = %v", errs)
	}

	draft.Email = ""
	errs = Validate(StepContactInfo, draft)
	if errs["email"] != "Email is required" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestCertificateRequired(t *testing.T) {
	draft := completeDraft()
	draft.Certificate = nil
	errs := Validate(StepEducationalBackground, draft)
	if errs["certificate"] != "Certificate upload is required" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestPaymentValidation(t *testing.T) {
	draft := completeDraft()
	draft.PaymentMethod = ""
	errs := Validate(StepPayment, draft)
	if errs["paymentMethod"] != "Select a payment method" {
		t.Fatalf("errors = %v", errs)
	}

	draft.PaymentMethod = model.PaymentMethodEVC
	draft.EVCPhoneNumber = ""
	errs = Validate(StepPayment, draft)
	if errs["evcPhoneNumber"] != "EVC phone is required" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestSetFieldClearsOnlyItsError(t *testing.T) {
	m := New()
	m.Next()
	if len(m.Errors) == 0 {
		t.Fatal("expected validation errors")
	}
	m.SetField("fullname", "Ayan Warsame")
	if _, ok := m.Errors["fullname"]; ok {
		t.Fatal("fullname error should clear on edit")
	}
	if _, ok := m.Errors["motherName"]; !ok {
		t.Fatal("other errors must survive the edit")
	}
}

func TestFacultyChangeClearsDepartment(t *testing.T) {
	m := New()
	m.SetField("faculty", "f1")
	m.SetField("department", "d1")
	m.SetField("faculty", "f2")
	if m.Draft.DepartmentID != "" {
		t.Fatalf("department = %q, want cleared", m.Draft.DepartmentID)
	}

	// Re-selecting the same faculty keeps the department.
	m.SetField("department", "d2")
	m.SetField("faculty", "f2")
	if m.Draft.DepartmentID != "d2" {
		t.Fatalf("department = %q, want d2", m.Draft.DepartmentID)
	}
}

func TestDepartmentOptions(t *testing.T) {
	departments := []model.Department{
		{ID: "d1", Name: "Computer Science", FacultyID: "f1"},
		{ID: "d2", Name: "Civil Engineering", FacultyID: "f1"},
		{ID: "d3", Name: "Surgery", FacultyID: "f2"},
	}

	if options := DepartmentOptions(departments, ""); options != nil {
		t.Fatalf("no faculty should yield no options, got %v", options)
	}

	options := DepartmentOptions(departments, "f1")
	if len(options) != 2 || options[0].ID != "d1" || options[1].ID != "d2" {
		t.Fatalf("options = %v", options)
	}
}

// Switching faculty after picking a department forces a fresh, valid
// department choice before the step can pass.
func TestFacultySwitchScenario(t *testing.T) {
	departments := []model.Department{
		{ID: "d1", Name: "Computer Science", FacultyID: "f1"},
		{ID: "d2", Name: "Surgery", FacultyID: "f2"},
	}

	m := completeMachine()
	m.Step = StepAcademicInfo
	m.SetField("faculty", "f1")
	m.SetField("department", "d1")
	if !m.Next() {
		t.Fatalf("valid academic info blocked: %v", m.Errors)
	}

	m.Prev()
	m.SetField("faculty", "f2")
	if m.Next() {
		t.Fatal("cleared department must block the step")
	}
	if m.Errors["department"] != "Department selection is required" {
		t.Fatalf("errors = %v", m.Errors)
	}

	options := DepartmentOptions(departments, m.Draft.FacultyID)
	if len(options) != 1 || options[0].ID != "d2" {
		t.Fatalf("options = %v", options)
	}
	m.SetField("department", "d2")
	if !m.Next() {
		t.Fatalf("step still blocked: %v", m.Errors)
	}
}

func TestFinalizeJumpsToFirstFailingStep(t *testing.T) {
	m := completeMachine()
	m.Step = StepReview
	m.Draft.Email = ""
	m.Draft.PaymentMethod = ""

	if m.Finalize() {
		t.Fatal("incomplete draft must not finalize")
	}
	if m.Step != StepContactInfo {
		t.Fatalf("step = %d, want first failing step %d", m.Step, StepContactInfo)
	}
	if m.Errors["email"] != "Email is required" {
		t.Fatalf("errors = %v", m.Errors)
	}
}

func TestFinalizeCompleteDraft(t *testing.T) {
	m := completeMachine()
	m.Step = StepReview
	if !m.Finalize() {
		t.Fatalf("complete draft failed finalize: %v", m.Errors)
	}
	if m.Step != StepReview {
		t.Fatalf("step = %d", m.Step)
	}
}

func TestDeriveReview(t *testing.T) {
	faculties := []model.Faculty{{ID: "f1", Name: "Engineering"}}
	departments := []model.Department{{ID: "d1", Name: "Computer Science", FacultyID: "f1"}}

	draft := completeDraft()
	review := DeriveReview(draft, faculties, departments)
	if review.FacultyName != "Engineering" || review.DepartmentName != "Computer Science" {
		t.Fatalf("review = %+v", review)
	}

	// Unknown ids render as the placeholder.
	draft.FacultyID = "missing"
	draft.DepartmentID = "missing"
	review = DeriveReview(draft, faculties, departments)
	if review.FacultyName != "-" || review.DepartmentName != "-" {
		t.Fatalf("review = %+v", review)
	}
}
