// Package api is the typed client for the external admissions REST API.
// All response-shape normalization happens here; the rest of the portal
// only sees the canonical model types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
)

// Error is a non-2xx upstream response with a user-visible message
// extracted from its body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type loginResponse struct {
	Message string         `json:"message"`
	User    model.Identity `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (model.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp, "Login failed"); err != nil {
		return model.Identity{}, err
	}
	return resp.User, nil
}

func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats, "Failed to load stats"); err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}

// facultyRecord is the wire shape of a faculty row.
type facultyRecord struct {
	ID   string `json:"_id"`
	Name string `json:"fuc_name"`
	Dean string `json:"dean"`
}

func (c *Client) Faculties(ctx context.Context) ([]model.Faculty, error) {
	var records []facultyRecord
	if err := c.getList(ctx, "/getFaculties", &records, "Failed to load faculties"); err != nil {
		return nil, err
	}
	faculties := make([]model.Faculty, 0, len(records))
	for _, rec := range records {
		faculties = append(faculties, model.Faculty{ID: rec.ID, Name: rec.Name, Dean: rec.Dean})
	}
	return faculties, nil
}

func (c *Client) AddFaculty(ctx context.Context, name, dean string) error {
	body := map[string]string{"fuc_name": name, "dean": dean}
	return c.do(ctx, http.MethodPost, "/addFaculty", body, nil, "Failed to create faculty")
}

func (c *Client) DeleteFaculty(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/faculties/"+id, nil, nil, "Delete failed")
}

// departmentRecord's faculty field may arrive as a bare id or an embedded
// faculty object.
type departmentRecord struct {
	ID      string          `json:"_id"`
	Name    string          `json:"dept_name"`
	Faculty json.RawMessage `json:"faculty"`
}

func (c *Client) Departments(ctx context.Context) ([]model.Department, error) {
	var records []departmentRecord
	if err := c.getList(ctx, "/getDepartments", &records, "Failed to load departments"); err != nil {
		return nil, err
	}
	departments := make([]model.Department, 0, len(records))
	for _, rec := range records {
		ref := normalizeReference(rec.Faculty, "fuc_name", "name")
		departments = append(departments, model.Department{
			ID:           rec.ID,
			Name:         rec.Name,
			FacultyID:    ref.ID,
			FacultyLabel: ref.Label,
		})
	}
	return departments, nil
}

func (c *Client) AddDepartment(ctx context.Context, name, facultyID string) error {
	body := map[string]string{"dept_name": name, "faculty": facultyID}
	return c.do(ctx, http.MethodPost, "/addDepartment", body, nil, "Failed to create department")
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/departments/"+id, nil, nil, "Delete failed")
}

type programRecord struct {
	ID       string `json:"_id"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Level    string `json:"level"`
	Duration string `json:"duration"`
}

// Programs tolerates both a bare array and a {data:[...]} wrapper.
func (c *Client) Programs(ctx context.Context) ([]model.Program, error) {
	var records []programRecord
	if err := c.getList(ctx, "/getPrograms", &records, "Failed to load programs"); err != nil {
		return nil, err
	}
	programs := make([]model.Program, 0, len(records))
	for _, rec := range records {
		programs = append(programs, model.Program{
			ID:       rec.ID,
			Code:     rec.Code,
			Title:    rec.Title,
			Level:    rec.Level,
			Duration: rec.Duration,
		})
	}
	return programs, nil
}

func (c *Client) AddProgram(ctx context.Context, p model.Program) error {
	body := map[string]string{
		"code":     p.Code,
		"title":    p.Title,
		"level":    p.Level,
		"duration": p.Duration,
	}
	return c.do(ctx, http.MethodPost, "/addProgram", body, nil, "Failed to create program")
}

func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/programs/"+id, nil, nil, "Delete failed")
}

// admissionRecord carries the upstream's inconsistent casing: faculty is
// lower-case, Department upper-case, and either may be an id or an object.
type admissionRecord struct {
	ID         string          `json:"_id"`
	FullName   string          `json:"fullname"`
	Faculty    json.RawMessage `json:"faculty"`
	Department json.RawMessage `json:"Department"`
	Mode       string          `json:"mode"`
}

func (c *Client) StudentAdmissions(ctx context.Context) ([]model.StudentAdmission, error) {
	var records []admissionRecord
	if err := c.getList(ctx, "/getStudentAdmissions", &records, "Failed to load students"); err != nil {
		return nil, err
	}
	students := make([]model.StudentAdmission, 0, len(records))
	for _, rec := range records {
		students = append(students, model.StudentAdmission{
			ID:         rec.ID,
			FullName:   rec.FullName,
			Faculty:    normalizeReference(rec.Faculty, "fuc_name", "name").Label,
			Department: normalizeReference(rec.Department, "dept_name", "name").Label,
			Mode:       rec.Mode,
		})
	}
	return students, nil
}

func (c *Client) DeleteStudentAdmission(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/student-admissions/"+id, nil, nil, "Delete failed")
}

// SubmitAdmission posts the accumulated application draft. Attachments are
// not transmitted; only their names and sizes travel with the document.
func (c *Client) SubmitAdmission(ctx context.Context, app model.Application) error {
	return c.do(ctx, http.MethodPost, "/addStudentAdmission", app, nil, "Failed to submit application")
}

// reference is the canonical form of a lookup field that may arrive as a
// bare id or an embedded object.
type reference struct {
	ID    string
	Label string
}

func normalizeReference(raw json.RawMessage, nameKeys ...string) reference {
	if len(raw) == 0 || string(raw) == "null" {
		return reference{}
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return reference{ID: id, Label: id}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return reference{}
	}
	ref := reference{}
	if rawID, ok := obj["_id"]; ok {
		_ = json.Unmarshal(rawID, &ref.ID)
	}
	for _, key := range nameKeys {
		if rawName, ok := obj[key]; ok {
			var name string
			if err := json.Unmarshal(rawName, &name); err == nil && name != "" {
				ref.Label = name
				break
			}
		}
	}
	if ref.Label == "" {
		ref.Label = ref.ID
	}
	return ref
}

// listEnvelope tolerates both {data:[...]} and a bare array body.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) getList(ctx context.Context, path string, out interface{}, fallback string) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw, fallback); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope listEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(resp.Body, fallback, resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// extractMessage pulls error, then message, from the response body. A
// missing or unparseable body falls back to a generic message carrying the
// status, and must never itself fail.
func extractMessage(body io.Reader, fallback string, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, err := io.ReadAll(body)
	if err == nil {
		_ = json.Unmarshal(data, &payload)
	}
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("%s (%d)", fallback, status)
}
