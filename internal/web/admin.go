package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
	"github.com/Abdinajib123/Online-student-admission/internal/table"
)

// resourceView is the render model shared by all admin screens: a table,
// optionally the entry overlay, or an error in place of the table.
type resourceView struct {
	Table  table.View
	Slug   string
	CanAdd bool
	Modal  *modalView
	Error  string
}

// ColSpan covers the data columns plus the actions column.
func (v resourceView) ColSpan() int {
	return len(v.Table.Labels) + 1
}

// modalView is the entry overlay. A nil modal is absent from the rendered
// document entirely.
type modalView struct {
	Title    string
	Error    string
	Action   string
	CloseURL string
	Fields   []formField
}

type formField struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Options []selectOption
}

type selectOption struct {
	Value string
	Label string
}

func tableParams(r *http.Request) table.Params {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("size"))
	return table.Params{Query: query.Get("q"), Page: page, Size: size}
}

type dashboardView struct {
	Stats model.DashboardStats
	Error string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api.DashboardStats(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "dashboard", "Dashboard", dashboardView{
			Error: userMessage(err, "Failed to load stats"),
		})
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", "Dashboard", dashboardView{Stats: stats})
}

// Students is read and delete only; there is no add flow and its rows come
// from the admissions listing.
type studentRow struct {
	Seq        int
	FullName   string
	Faculty    string
	Department string
	Mode       string
	ID         string
}

var studentsTable = table.Table[studentRow]{
	Title: "Students",
	Columns: []table.Column[studentRow]{
		{Label: "ID", Value: func(row studentRow) string { return strconv.Itoa(row.Seq) }},
		{Label: "Student", Value: func(row studentRow) string { return row.FullName }},
		{Label: "Faculty", Value: func(row studentRow) string { return row.Faculty }},
		{Label: "Department", Value: func(row studentRow) string { return row.Department }},
		{Label: "Mode", Value: func(row studentRow) string { return row.Mode }},
	},
	Ref: func(row studentRow) string { return row.ID },
}

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	admissions, err := s.api.StudentAdmissions(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "resource", "Students", resourceView{
			Slug:  "students",
			Error: userMessage(err, "Failed to load students"),
		})
		return
	}
	rows := make([]studentRow, 0, len(admissions))
	for i, adm := range admissions {
		rows = append(rows, studentRow{
			Seq:        i + 1,
			FullName:   adm.FullName,
			Faculty:    adm.Faculty,
			Department: adm.Department,
			Mode:       adm.Mode,
			ID:         adm.ID,
		})
	}
	s.render(w, r, http.StatusOK, "resource", "Students", resourceView{
		Table: studentsTable.View(rows, tableParams(r)),
		Slug:  "students",
	})
}

type programRow struct {
	Display  string
	Title    string
	Level    string
	Duration string
	ID       string
}

var programsTable = table.Table[programRow]{
	Title: "Programs",
	Columns: []table.Column[programRow]{
		{Label: "ID", Value: func(row programRow) string { return row.Display }},
		{Label: "Title", Value: func(row programRow) string { return row.Title }},
		{Label: "Level", Value: func(row programRow) string { return row.Level }},
		{Label: "Duration", Value: func(row programRow) string { return row.Duration }},
	},
	Ref: func(row programRow) string { return row.ID },
}

type programForm struct {
	Code     string `validate:"required"`
	Title    string `validate:"required"`
	Level    string `validate:"required"`
	Duration string `validate:"required"`
}

var programLabels = map[string]string{
	"Code":     "Code",
	"Title":    "Title",
	"Level":    "Level",
	"Duration": "Duration",
}

func programModal(form programForm, errMsg string) *modalView {
	return &modalView{
		Title:    "Add Program",
		Error:    errMsg,
		Action:   "/admin/programs",
		CloseURL: "/admin/programs",
		Fields: []formField{
			{Name: "code", Label: "Code", Type: "text", Value: form.Code},
			{Name: "title", Label: "Title", Type: "text", Value: form.Title},
			{Name: "level", Label: "Level", Type: "text", Value: form.Level},
			{Name: "duration", Label: "Duration", Type: "text", Value: form.Duration},
		},
	}
}

func (s *Server) renderPrograms(w http.ResponseWriter, r *http.Request, modal *modalView) {
	programs, err := s.api.Programs(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "resource", "Programs", resourceView{
			Slug:  "programs",
			Error: userMessage(err, "Failed to load programs"),
		})
		return
	}
	rows := make([]programRow, 0, len(programs))
	for i, prog := range programs {
		display := prog.Code
		if display == "" {
			display = strconv.Itoa(i + 1)
		}
		ref := prog.ID
		if ref == "" {
			ref = prog.Code
		}
		rows = append(rows, programRow{
			Display:  display,
			Title:    prog.Title,
			Level:    prog.Level,
			Duration: prog.Duration,
			ID:       ref,
		})
	}
	s.render(w, r, http.StatusOK, "resource", "Programs", resourceView{
		Table:  programsTable.View(rows, tableParams(r)),
		Slug:   "programs",
		CanAdd: true,
		Modal:  modal,
	})
}

func (s *Server) handleProgramsScreen(w http.ResponseWriter, r *http.Request) {
	var modal *modalView
	if r.URL.Query().Get("modal") == "add" {
		modal = programModal(programForm{}, "")
	}
	s.renderPrograms(w, r, modal)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/programs", http.StatusSeeOther)
		return
	}
	form := programForm{
		Code:     r.PostFormValue("code"),
		Title:    r.PostFormValue("title"),
		Level:    r.PostFormValue("level"),
		Duration: r.PostFormValue("duration"),
	}
	if msg := s.requiredFieldMessage(form, programLabels); msg != "" {
		s.renderPrograms(w, r, programModal(form, msg))
		return
	}
	err := s.api.AddProgram(r.Context(), model.Program{
		Code:     form.Code,
		Title:    form.Title,
		Level:    form.Level,
		Duration: form.Duration,
	})
	if err != nil {
		s.renderPrograms(w, r, programModal(form, userMessage(err, "Failed to create program")))
		return
	}
	http.Redirect(w, r, "/admin/programs", http.StatusSeeOther)
}

type facultyRow struct {
	Seq  int
	Name string
	Dean string
	ID   string
}

var facultiesTable = table.Table[facultyRow]{
	Title: "Faculties",
	Columns: []table.Column[facultyRow]{
		{Label: "#", Value: func(row facultyRow) string { return strconv.Itoa(row.Seq) }},
		{Label: "Faculty", Value: func(row facultyRow) string { return row.Name }},
		{Label: "Dean", Value: func(row facultyRow) string { return row.Dean }},
	},
	Ref: func(row facultyRow) string { return row.ID },
}

type facultyForm struct {
	Name string `validate:"required"`
	Dean string `validate:"required"`
}

var facultyLabels = map[string]string{
	"Name": "Faculty name",
	"Dean": "Dean",
}

func facultyModal(form facultyForm, errMsg string) *modalView {
	return &modalView{
		Title:    "Add Faculty",
		Error:    errMsg,
		Action:   "/admin/faculties",
		CloseURL: "/admin/faculties",
		Fields: []formField{
			{Name: "fuc_name", Label: "Faculty Name", Type: "text", Value: form.Name},
			{Name: "dean", Label: "Dean", Type: "text", Value: form.Dean},
		},
	}
}

func (s *Server) renderFaculties(w http.ResponseWriter, r *http.Request, modal *modalView) {
	faculties, err := s.api.Faculties(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "resource", "Faculties", resourceView{
			Slug:  "faculties",
			Error: userMessage(err, "Failed to load faculties"),
		})
		return
	}
	rows := make([]facultyRow, 0, len(faculties))
	for i, fac := range faculties {
		rows = append(rows, facultyRow{Seq: i + 1, Name: fac.Name, Dean: fac.Dean, ID: fac.ID})
	}
	s.render(w, r, http.StatusOK, "resource", "Faculties", resourceView{
		Table:  facultiesTable.View(rows, tableParams(r)),
		Slug:   "faculties",
		CanAdd: true,
		Modal:  modal,
	})
}

func (s *Server) handleFacultiesScreen(w http.ResponseWriter, r *http.Request) {
	var modal *modalView
	if r.URL.Query().Get("modal") == "add" {
		modal = facultyModal(facultyForm{}, "")
	}
	s.renderFaculties(w, r, modal)
}

func (s *Server) handleCreateFaculty(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/faculties", http.StatusSeeOther)
		return
	}
	form := facultyForm{
		Name: r.PostFormValue("fuc_name"),
		Dean: r.PostFormValue("dean"),
	}
	if msg := s.requiredFieldMessage(form, facultyLabels); msg != "" {
		s.renderFaculties(w, r, facultyModal(form, msg))
		return
	}
	if err := s.api.AddFaculty(r.Context(), form.Name, form.Dean); err != nil {
		s.renderFaculties(w, r, facultyModal(form, userMessage(err, "Failed to create faculty")))
		return
	}
	http.Redirect(w, r, "/admin/faculties", http.StatusSeeOther)
}

type departmentRow struct {
	Seq     int
	Name    string
	Faculty string
	ID      string
}

var departmentsTable = table.Table[departmentRow]{
	Title: "Departments",
	Columns: []table.Column[departmentRow]{
		{Label: "#", Value: func(row departmentRow) string { return strconv.Itoa(row.Seq) }},
		{Label: "Department", Value: func(row departmentRow) string { return row.Name }},
		{Label: "Faculty", Value: func(row departmentRow) string { return row.Faculty }},
	},
	Ref: func(row departmentRow) string { return row.ID },
}

type departmentForm struct {
	Name    string `validate:"required"`
	Faculty string `validate:"required"`
}

var departmentLabels = map[string]string{
	"Name":    "Department name",
	"Faculty": "Faculty",
}

// departmentModal fetches the faculty lookup on every open; the list is
// deliberately not cached between opens.
func (s *Server) departmentModal(ctx context.Context, form departmentForm, errMsg string) *modalView {
	var options []selectOption
	if faculties, err := s.api.Faculties(ctx); err == nil {
		for _, fac := range faculties {
			options = append(options, selectOption{Value: fac.ID, Label: fac.Name})
		}
	}
	return &modalView{
		Title:    "Add Department",
		Error:    errMsg,
		Action:   "/admin/departments",
		CloseURL: "/admin/departments",
		Fields: []formField{
			{Name: "dept_name", Label: "Department Name", Type: "text", Value: form.Name},
			{Name: "faculty", Label: "Faculty", Type: "select", Value: form.Faculty, Options: options},
		},
	}
}

func (s *Server) renderDepartments(w http.ResponseWriter, r *http.Request, modal *modalView) {
	departments, err := s.api.Departments(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "resource", "Departments", resourceView{
			Slug:  "departments",
			Error: userMessage(err, "Failed to load departments"),
		})
		return
	}
	rows := make([]departmentRow, 0, len(departments))
	for i, dept := range departments {
		rows = append(rows, departmentRow{Seq: i + 1, Name: dept.Name, Faculty: dept.FacultyLabel, ID: dept.ID})
	}
	s.render(w, r, http.StatusOK, "resource", "Departments", resourceView{
		Table:  departmentsTable.View(rows, tableParams(r)),
		Slug:   "departments",
		CanAdd: true,
		Modal:  modal,
	})
}

func (s *Server) handleDepartmentsScreen(w http.ResponseWriter, r *http.Request) {
	var modal *modalView
	if r.URL.Query().Get("modal") == "add" {
		modal = s.departmentModal(r.Context(), departmentForm{}, "")
	}
	s.renderDepartments(w, r, modal)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/departments", http.StatusSeeOther)
		return
	}
	form := departmentForm{
		Name:    r.PostFormValue("dept_name"),
		Faculty: r.PostFormValue("faculty"),
	}
	if msg := s.requiredFieldMessage(form, departmentLabels); msg != "" {
		s.renderDepartments(w, r, s.departmentModal(r.Context(), form, msg))
		return
	}
	if err := s.api.AddDepartment(r.Context(), form.Name, form.Faculty); err != nil {
		s.renderDepartments(w, r, s.departmentModal(r.Context(), form, userMessage(err, "Failed to create department")))
		return
	}
	http.Redirect(w, r, "/admin/departments", http.StatusSeeOther)
}

// requiredFieldMessage validates the create form and returns a user-visible
// message for the first missing field, or "" when the form is complete.
// Nothing reaches the upstream API until this passes.
func (s *Server) requiredFieldMessage(form interface{}, labels map[string]string) string {
	err := s.validate.Struct(form)
	if err == nil {
		return ""
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		label := labels[errs[0].Field()]
		if label == "" {
			label = errs[0].Field()
		}
		return label + " is required"
	}
	return "Invalid form submission"
}

type confirmView struct {
	Message   string
	Action    string
	CancelURL string
}

type noticeView struct {
	Message string
	BackURL string
}

type errorView struct {
	Message string
	BackURL string
}

func (s *Server) deleteTarget(resource string) (string, func(context.Context, string) error, bool) {
	switch resource {
	case "students":
		return "Delete this student admission?", s.api.DeleteStudentAdmission, true
	case "programs":
		return "Delete this program?", s.api.DeleteProgram, true
	case "faculties":
		return "Delete this faculty?", s.api.DeleteFaculty, true
	case "departments":
		return "Delete this department?", s.api.DeleteDepartment, true
	default:
		return "", nil, false
	}
}

// handleDeleteConfirm is the explicit yes/no gate: no DELETE is issued
// until the confirmation form is posted.
func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	message, _, ok := s.deleteTarget(resource)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "confirm", "Confirm Delete", confirmView{
		Message:   message,
		Action:    "/admin/" + resource + "/" + id + "/delete",
		CancelURL: "/admin/" + resource,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	_, del, ok := s.deleteTarget(resource)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := del(r.Context(), id); err != nil {
		s.render(w, r, http.StatusBadGateway, "error", "Delete Failed", errorView{
			Message: userMessage(err, "Delete failed"),
			BackURL: "/admin/" + resource,
		})
		return
	}
	http.Redirect(w, r, "/admin/"+resource, http.StatusSeeOther)
}

var editSubjects = map[string]string{
	"students":    "student",
	"programs":    "program",
	"faculties":   "faculty",
	"departments": "department",
}

// Edit is an affordance without an implementation, kept as a visible stub.
// TODO: wire the entry overlay for edits once the upstream exposes update
// endpoints for these resources.
func (s *Server) handleEditStub(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	subject, ok := editSubjects[resource]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "notice", "Edit", noticeView{
		Message: "Edit " + subject + " coming soon",
		BackURL: "/admin/" + resource,
	})
}
