package web

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
	"github.com/Abdinajib123/Online-student-admission/internal/wizard"
)

const wizardCookie = "osas_wizard"

const maxUploadMemory = 32 << 20

type wizardView struct {
	StepNumber  int
	StepCount   int
	StepTitle   string
	Fields      []stepField
	Errors      map[string]string
	Review      *reviewView
	LookupError string
	SubmitError string
	IsReview    bool
	CanPrev     bool
}

type stepField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Accept   string
	Options  []selectOption
	Disabled bool
}

type reviewView struct {
	Draft          model.Application
	FacultyName    string
	DepartmentName string
}

// loadLookups fetches faculties and departments in parallel. Either
// failing collapses into a single combined error state.
func (s *Server) loadLookups(ctx context.Context) ([]model.Faculty, []model.Department, error) {
	var (
		faculties   []model.Faculty
		departments []model.Department
		facErr      error
		deptErr     error
		wg          sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		faculties, facErr = s.api.Faculties(ctx)
	}()
	go func() {
		defer wg.Done()
		departments, deptErr = s.api.Departments(ctx)
	}()
	wg.Wait()
	if facErr != nil {
		return nil, nil, facErr
	}
	if deptErr != nil {
		return nil, nil, deptErr
	}
	return faculties, departments, nil
}

// wizardMachine resumes the in-flight draft named by the wizard cookie, or
// starts a fresh one.
func (s *Server) wizardMachine(w http.ResponseWriter, r *http.Request) *wizard.Machine {
	if cookie, err := r.Cookie(wizardCookie); err == nil && cookie.Value != "" {
		if m, err := s.drafts.Load(r.Context(), cookie.Value); err == nil {
			return m
		}
	}
	m := wizard.New()
	_ = s.drafts.Save(r.Context(), m)
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookie,
		Value:    m.ID,
		Path:     "/admission",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return m
}

func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	m := s.wizardMachine(w, r)
	faculties, departments, err := s.loadLookups(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "wizard", "Admission", wizardView{
			StepNumber:  int(m.Step),
			StepCount:   wizard.StepCount,
			StepTitle:   m.Step.Title(),
			LookupError: userMessage(err, "Failed to load lookups"),
		})
		return
	}
	s.render(w, r, http.StatusOK, "wizard", "Admission", s.wizardStepView(m, faculties, departments, ""))
}

// wizardFieldOrder fixes the order form fields are applied in: faculty
// before department, so a faculty change clears the dependent selection
// before a posted department could race it.
var wizardFieldOrder = []string{
	"fullname", "dateOfBirth", "gender", "motherName", "placeOfBirth",
	"address", "city", "state", "zipCode", "country",
	"email", "phone", "emergencyContact", "emergencyPhone",
	"schoolName", "graduationYear", "grade",
	"faculty", "department", "mode", "entryDate",
	"workExperience", "extracurricularActivities", "scholarships",
	"paymentMethod", "evcPhoneNumber",
}

var wizardFileFields = []string{"certificate", "transcript", "recommendationLetters", "passport"}

func (s *Server) handleWizardPost(w http.ResponseWriter, r *http.Request) {
	m := s.wizardMachine(w, r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/admission", http.StatusSeeOther)
			return
		}
	}

	form := r.PostForm
	if values, ok := form["faculty"]; ok && len(values) > 0 && values[0] != m.Draft.FacultyID {
		// The posted department was rendered against the previous
		// faculty's option set; discard it along with the stale choice.
		delete(form, "department")
	}
	for _, name := range wizardFieldOrder {
		if values, ok := form[name]; ok && len(values) > 0 {
			m.SetField(name, values[0])
		}
	}
	if r.MultipartForm != nil {
		for _, name := range wizardFileFields {
			headers := r.MultipartForm.File[name]
			if len(headers) == 0 {
				continue
			}
			header := headers[0]
			file, err := header.Open()
			if err != nil {
				continue
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				continue
			}
			m.Attach(name, &model.Attachment{Name: header.Filename, Size: header.Size, Content: content})
		}
	}

	switch r.PostFormValue("action") {
	case "prev":
		m.Prev()
	case "submit":
		if m.Finalize() {
			if err := s.api.SubmitAdmission(r.Context(), m.Draft); err != nil {
				_ = s.drafts.Save(r.Context(), m)
				s.renderWizardWithSubmitError(w, r, m, userMessage(err, "Failed to submit application"))
				return
			}
			_ = s.drafts.Delete(r.Context(), m.ID)
			http.SetCookie(w, &http.Cookie{
				Name:     wizardCookie,
				Value:    "",
				Path:     "/admission",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.render(w, r, http.StatusOK, "done", "Application Submitted", nil)
			return
		}
	default:
		m.Next()
	}

	_ = s.drafts.Save(r.Context(), m)
	http.Redirect(w, r, "/admission", http.StatusSeeOther)
}

func (s *Server) renderWizardWithSubmitError(w http.ResponseWriter, r *http.Request, m *wizard.Machine, message string) {
	faculties, departments, err := s.loadLookups(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "wizard", "Admission", wizardView{
			StepNumber:  int(m.Step),
			StepCount:   wizard.StepCount,
			StepTitle:   m.Step.Title(),
			LookupError: userMessage(err, "Failed to load lookups"),
		})
		return
	}
	view := s.wizardStepView(m, faculties, departments, message)
	s.render(w, r, http.StatusOK, "wizard", "Admission", view)
}

func (s *Server) wizardStepView(m *wizard.Machine, faculties []model.Faculty, departments []model.Department, submitError string) wizardView {
	view := wizardView{
		StepNumber:  int(m.Step),
		StepCount:   wizard.StepCount,
		StepTitle:   m.Step.Title(),
		Errors:      m.Errors,
		SubmitError: submitError,
		IsReview:    m.Step == wizard.StepReview,
		CanPrev:     m.Step > wizard.StepPersonalInfo,
	}

	draft := m.Draft
	switch m.Step {
	case wizard.StepPersonalInfo:
		view.Fields = []stepField{
			{Name: "fullname", Label: "Full Name", Type: "text", Value: draft.FullName},
			{Name: "motherName", Label: "Mother's Name", Type: "text", Value: draft.MotherName},
			{Name: "dateOfBirth", Label: "Date of Birth", Type: "date", Value: draft.DateOfBirth},
			{Name: "gender", Label: "Gender", Type: "select", Value: draft.Gender, Options: []selectOption{
				{Value: "Male", Label: "Male"},
				{Value: "Female", Label: "Female"},
			}},
			{Name: "placeOfBirth", Label: "Place of Birth", Type: "text", Value: draft.PlaceOfBirth},
			{Name: "address", Label: "Address", Type: "text", Value: draft.Address},
			{Name: "city", Label: "City", Type: "text", Value: draft.City},
			{Name: "state", Label: "State", Type: "text", Value: draft.State},
			{Name: "zipCode", Label: "Zip Code", Type: "text", Value: draft.ZipCode},
			{Name: "country", Label: "Country", Type: "text", Value: draft.Country},
		}
	case wizard.StepContactInfo:
		view.Fields = []stepField{
			{Name: "email", Label: "Email", Type: "text", Value: draft.Email},
			{Name: "phone", Label: "Phone Number", Type: "text", Value: draft.Phone},
			{Name: "emergencyContact", Label: "Emergency Contact", Type: "text", Value: draft.EmergencyContact},
			{Name: "emergencyPhone", Label: "Emergency Phone", Type: "text", Value: draft.EmergencyPhone},
		}
	case wizard.StepEducationalBackground:
		certificate := ""
		if draft.Certificate != nil {
			certificate = draft.Certificate.Name
		}
		view.Fields = []stepField{
			{Name: "schoolName", Label: "School Name", Type: "text", Value: draft.SchoolName},
			{Name: "graduationYear", Label: "Graduation Year", Type: "text", Value: draft.GraduationYear},
			{Name: "grade", Label: "Grade", Type: "text", Value: draft.Grade},
			{Name: "certificate", Label: "Certificate", Type: "file", Value: certificate, Accept: ".pdf,.doc,.docx,.jpg,.jpeg,.png"},
		}
	case wizard.StepAcademicInfo:
		facultyOptions := make([]selectOption, 0, len(faculties))
		for _, fac := range faculties {
			facultyOptions = append(facultyOptions, selectOption{Value: fac.ID, Label: fac.Name})
		}
		departmentOptions := []selectOption{}
		for _, dept := range wizard.DepartmentOptions(departments, draft.FacultyID) {
			departmentOptions = append(departmentOptions, selectOption{Value: dept.ID, Label: dept.Name})
		}
		view.Fields = []stepField{
			{Name: "faculty", Label: "Faculty", Type: "select", Value: draft.FacultyID, Options: facultyOptions},
			{Name: "department", Label: "Department", Type: "select", Value: draft.DepartmentID, Options: departmentOptions, Disabled: draft.FacultyID == ""},
			{Name: "mode", Label: "Mode", Type: "select", Value: draft.Mode, Options: []selectOption{
				{Value: model.ModeFullTime, Label: model.ModeFullTime},
				{Value: model.ModePartTime, Label: model.ModePartTime},
			}},
			{Name: "entryDate", Label: "Entry Date", Type: "date", Value: draft.EntryDate},
		}
	case wizard.StepPayment:
		view.Fields = []stepField{
			{Name: "paymentMethod", Label: "Payment Method", Type: "select", Value: draft.PaymentMethod, Options: []selectOption{
				{Value: model.PaymentMethodEVC, Label: "EVC Plus"},
			}},
		}
		if draft.PaymentMethod == model.PaymentMethodEVC {
			view.Fields = append(view.Fields, stepField{
				Name: "evcPhoneNumber", Label: "EVC Phone Number", Type: "text", Value: draft.EVCPhoneNumber,
			})
		}
	case wizard.StepReview:
		review := wizard.DeriveReview(draft, faculties, departments)
		view.Review = &reviewView{
			Draft:          draft,
			FacultyName:    review.FacultyName,
			DepartmentName: review.DepartmentName,
		}
	}

	return view
}
