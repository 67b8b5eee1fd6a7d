package model

// Identity is the authenticated portal user. It is owned by the session
// store and persisted as the osas_user cookie between visits.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// Unknown roles grant nothing.
func (i Identity) IsAdmin() bool   { return i.Role == RoleAdmin }
func (i Identity) IsStaff() bool   { return i.Role == RoleStaff }
func (i Identity) IsStudent() bool { return i.Role == RoleStudent }

type Faculty struct {
	ID   string
	Name string
	Dean string
}

// Department's FacultyLabel is the human-readable faculty string when the
// upstream embeds the faculty object, otherwise it equals FacultyID.
type Department struct {
	ID           string
	Name         string
	FacultyID    string
	FacultyLabel string
}

// Program's Code doubles as the row's display identifier when present.
type Program struct {
	ID       string
	Code     string
	Title    string
	Level    string
	Duration string
}

// StudentAdmission is the admin-view row projection. Faculty and Department
// are already flattened to display strings at the API boundary.
type StudentAdmission struct {
	ID         string
	FullName   string
	Faculty    string
	Department string
	Mode       string
}

type DashboardStats struct {
	Students    int `json:"students"`
	Programs    int `json:"programs"`
	Faculties   int `json:"faculties"`
	Departments int `json:"departments"`
}

// Attachment is a file captured from the admission form. Content stays in
// memory for the life of the request and is never transmitted upstream or
// written to the draft store.
type Attachment struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content []byte `json:"-"`
}

// Application is the admission wizard's working document. It accumulates
// across steps and is posted upstream as a whole on submit; there is no
// partial persistence beyond the in-flight draft.
type Application struct {
	FullName     string `json:"fullname"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Gender       string `json:"gender,omitempty"`
	MotherName   string `json:"motherName"`
	Address      string `json:"address"`
	PlaceOfBirth string `json:"placeOfBirth"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`

	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	EmergencyPhone   string `json:"emergencyPhone"`

	SchoolName     string      `json:"schoolName"`
	GraduationYear string      `json:"graduationYear"`
	Grade          string      `json:"grade"`
	Certificate    *Attachment `json:"certificate,omitempty"`

	FacultyID    string `json:"faculty"`
	DepartmentID string `json:"department"`
	Mode         string `json:"mode"`
	EntryDate    string `json:"entryDate"`

	Transcript            *Attachment `json:"transcript,omitempty"`
	RecommendationLetters *Attachment `json:"recommendationLetters,omitempty"`
	Passport              *Attachment `json:"passport,omitempty"`

	WorkExperience            string `json:"workExperience,omitempty"`
	ExtracurricularActivities string `json:"extracurricularActivities,omitempty"`
	Scholarships              string `json:"scholarships,omitempty"`

	PaymentMethod  string `json:"paymentMethod"`
	EVCPhoneNumber string `json:"evcPhoneNumber,omitempty"`
}

const (
	ModeFullTime = "Full-time"
	ModePartTime = "Part-time"

	PaymentMethodEVC = "evc"
)
