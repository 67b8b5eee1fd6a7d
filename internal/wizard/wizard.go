// Package wizard is the admission form's state machine: six ordered steps,
// per-step validation gates, and a draft document that accumulates across
// steps until submission.
package wizard

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
)

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepContactInfo
	StepEducationalBackground
	StepAcademicInfo
	StepPayment
	StepReview
)

const StepCount = 6

func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepContactInfo:
		return "Contact Info"
	case StepEducationalBackground:
		return "Educational Background"
	case StepAcademicInfo:
		return "Academic Info"
	case StepPayment:
		return "Payment"
	case StepReview:
		return "Review"
	default:
		return ""
	}
}

// emailPattern mirrors the permissive text@text.text shape check used on
// the application form.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Machine holds one applicant's progress. It is serialized into the draft
// store between requests; attachment contents are deliberately excluded
// from serialization and live in memory only.
type Machine struct {
	ID     string            `json:"id"`
	Step   Step              `json:"step"`
	Draft  model.Application `json:"draft"`
	Errors map[string]string `json:"errors"`
}

func New() *Machine {
	return &Machine{
		ID:     uuid.NewString(),
		Step:   StepPersonalInfo,
		Errors: map[string]string{},
	}
}

// SetField writes one form field into the draft and clears only that
// field's error. Changing the faculty also clears the chosen department:
// a department belonging to the previous faculty must never survive the
// switch.
func (m *Machine) SetField(name, value string) {
	switch name {
	case "fullname":
		m.Draft.FullName = value
	case "dateOfBirth":
		m.Draft.DateOfBirth = value
	case "gender":
		m.Draft.Gender = value
	case "motherName":
		m.Draft.MotherName = value
	case "address":
		m.Draft.Address = value
	case "placeOfBirth":
		m.Draft.PlaceOfBirth = value
	case "city":
		m.Draft.City = value
	case "state":
		m.Draft.State = value
	case "zipCode":
		m.Draft.ZipCode = value
	case "country":
		m.Draft.Country = value
	case "email":
		m.Draft.Email = value
	case "phone":
		m.Draft.Phone = value
	case "emergencyContact":
		m.Draft.EmergencyContact = value
	case "emergencyPhone":
		m.Draft.EmergencyPhone = value
	case "schoolName":
		m.Draft.SchoolName = value
	case "graduationYear":
		m.Draft.GraduationYear = value
	case "grade":
		m.Draft.Grade = value
	case "faculty":
		if value != m.Draft.FacultyID {
			m.Draft.DepartmentID = ""
		}
		m.Draft.FacultyID = value
	case "department":
		m.Draft.DepartmentID = value
	case "mode":
		m.Draft.Mode = value
	case "entryDate":
		m.Draft.EntryDate = value
	case "workExperience":
		m.Draft.WorkExperience = value
	case "extracurricularActivities":
		m.Draft.ExtracurricularActivities = value
	case "scholarships":
		m.Draft.Scholarships = value
	case "paymentMethod":
		m.Draft.PaymentMethod = value
	case "evcPhoneNumber":
		m.Draft.EVCPhoneNumber = value
	default:
		return
	}
	delete(m.Errors, name)
}

// Attach stores a selected file reference on the draft. Nothing beyond the
// file picker's accept hint is enforced.
func (m *Machine) Attach(name string, att *model.Attachment) {
	switch name {
	case "certificate":
		m.Draft.Certificate = att
	case "transcript":
		m.Draft.Transcript = att
	case "recommendationLetters":
		m.Draft.RecommendationLetters = att
	case "passport":
		m.Draft.Passport = att
	default:
		return
	}
	delete(m.Errors, name)
}

// Next advances one step iff the current step validates. Failing fields
// are merged into the error map; entries for fields that passed are left
// untouched.
func (m *Machine) Next() bool {
	errs := Validate(m.Step, m.Draft)
	for field, msg := range errs {
		m.Errors[field] = msg
	}
	if len(errs) > 0 {
		return false
	}
	if m.Step < StepReview {
		m.Step++
	}
	return true
}

// Prev always succeeds and never validates.
func (m *Machine) Prev() {
	if m.Step > StepPersonalInfo {
		m.Step--
	}
}

// Finalize runs the virtual final check before submission: every step must
// validate. On failure the machine moves back to the first failing step
// with its errors merged in.
func (m *Machine) Finalize() bool {
	for step := StepPersonalInfo; step <= StepPayment; step++ {
		errs := Validate(step, m.Draft)
		if len(errs) == 0 {
			continue
		}
		m.Step = step
		for field, msg := range errs {
			m.Errors[field] = msg
		}
		return false
	}
	return true
}

// Validate is the per-step predicate. It returns exactly the failing
// fields with their messages.
func Validate(step Step, draft model.Application) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepPersonalInfo:
		if draft.FullName == "" {
			errs["fullname"] = "fullname is required"
		}
		if draft.MotherName == "" {
			errs["motherName"] = "Mother's name is required"
		}
		if draft.Address == "" {
			errs["address"] = "Address is required"
		}
		if draft.PlaceOfBirth == "" {
			errs["placeOfBirth"] = "Place of birth is required"
		}
	case StepContactInfo:
		if draft.Email == "" {
			errs["email"] = "Email is required"
		} else if !emailPattern.MatchString(draft.Email) {
			errs["email"] = "Email is invalid"
		}
		if draft.Phone == "" {
			errs["phone"] = "Phone number is required"
		}
		if draft.EmergencyPhone == "" {
			errs["emergencyPhone"] = "Emergency phone is required"
		}
	case StepEducationalBackground:
		if draft.SchoolName == "" {
			errs["schoolName"] = "School name is required"
		}
		if draft.GraduationYear == "" {
			errs["graduationYear"] = "Graduation year is required"
		}
		if draft.Grade == "" {
			errs["grade"] = "Grade is required"
		}
		if draft.Certificate == nil {
			errs["certificate"] = "Certificate upload is required"
		}
	case StepAcademicInfo:
		if draft.FacultyID == "" {
			errs["faculty"] = "Faculty selection is required"
		}
		if draft.DepartmentID == "" {
			errs["department"] = "Department selection is required"
		}
		if draft.Mode == "" {
			errs["mode"] = "Mode is required"
		}
		if draft.EntryDate == "" {
			errs["entryDate"] = "Entry date is required"
		}
	case StepPayment:
		if draft.PaymentMethod == "" {
			errs["paymentMethod"] = "Select a payment method"
		}
		if draft.PaymentMethod == model.PaymentMethodEVC && draft.EVCPhoneNumber == "" {
			errs["evcPhoneNumber"] = "EVC phone is required"
		}
	case StepReview:
	}
	return errs
}

// DepartmentOptions is the dependent-select filter: only departments of
// the chosen faculty are offered. No faculty, no options.
func DepartmentOptions(departments []model.Department, facultyID string) []model.Department {
	if facultyID == "" {
		return nil
	}
	options := make([]model.Department, 0, len(departments))
	for _, dept := range departments {
		if dept.FacultyID == facultyID {
			options = append(options, dept)
		}
	}
	return options
}

// Review re-derives the display names for the chosen faculty and
// department from the lookup lists by id, never from a label cached at
// selection time.
type Review struct {
	FacultyName    string
	DepartmentName string
}

func DeriveReview(draft model.Application, faculties []model.Faculty, departments []model.Department) Review {
	review := Review{FacultyName: "-", DepartmentName: "-"}
	for _, f := range faculties {
		if f.ID == draft.FacultyID {
			review.FacultyName = f.Name
			break
		}
	}
	for _, d := range departments {
		if d.ID == draft.DepartmentID {
			review.DepartmentName = d.Name
			break
		}
	}
	return review
}
