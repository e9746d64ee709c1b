package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
)

func dmrnBody() map[string]interface{} {
	return map[string]interface{}{
		"item_code":         "PMT-9001",
		"originator":        "Neha Joshi",
		"approved_by":       "S. Deshmukh",
		"from_department":   "DESIGN - PMTPL",
		"to_department":     "MANUFACTURING - PMTPL",
		"design_engineer":   "EMP-1",
		"old_revision":      "R2",
		"new_revision":      "R3",
		"modification_type": "Dimension Change",
		"reason_for_change": "Assembly clash",
		"nature_of_change":  "Slot widened",
		"remark":            "",
	}
}

func TestCreateDMRN(t *testing.T) {
	env := setupHandlerTest(t)
	token := testutil.DefaultTestToken()

	body := dmrnBody()
	body["file_name"] = "PMT-9001 R3.pdf"
	body["file_content"] = b64("%PDF r3")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/dmrns", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.Data(t, w)
	if data["status"] != "success" {
		t.Errorf("Expected success, got %v", data["status"])
	}
	name, _ := data["dmrn"].(string)
	if !strings.HasPrefix(name, "DMRN-") {
		t.Fatalf("Unexpected DMRN name %q", name)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/dmrns/"+name, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	dmrn := testutil.Data(t, w)
	if dmrn["owner"] != testutil.DefaultUserID {
		t.Errorf("Expected owner %s, got %v", testutil.DefaultUserID, dmrn["owner"])
	}
	details := dmrn["dmrn_details"].([]interface{})
	if len(details) != 1 {
		t.Fatalf("Expected exactly one detail row, got %d", len(details))
	}
	child := details[0].(map[string]interface{})
	if child["name"] != name+"-1" || child["new_revision"] != "R3" {
		t.Errorf("Unexpected child row: %v", child)
	}
	drawing, _ := child["new_drawing"].(string)
	if drawing == "" {
		t.Fatal("Expected new_drawing to be set")
	}

	var file entity.File
	if err := env.DB.Where("attached_to_doctype = ? AND attached_to_name = ?", entity.DoctypeDMRNDetail, name+"-1").First(&file).Error; err != nil {
		t.Fatalf("Expected attached file: %v", err)
	}
	if file.FileURL != drawing {
		t.Errorf("Expected new_drawing %q to equal file url %q", drawing, file.FileURL)
	}
}

func TestCreateDMRN_MissingField(t *testing.T) {
	env := setupHandlerTest(t)

	body := dmrnBody()
	delete(body, "approved_by")
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/dmrns", body, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if msg, _ := resp["message"].(string); !strings.Contains(msg, "approved_by") {
		t.Errorf("Expected message to name the field, got %q", msg)
	}
}

func TestGetDMRN_NotFound(t *testing.T) {
	env := setupHandlerTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dmrns/DMRN-2000-00001", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestDMRNDefaults(t *testing.T) {
	env := setupHandlerTest(t)
	testutil.SeedEmployee(t, env.DB, "EMP-1", "Neha Joshi", testutil.DefaultUserID, "DESIGN - PMTPL", entity.EmployeeStatusActive)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dmrns/defaults", nil, testutil.DefaultTestToken())
	data := testutil.Data(t, w)
	if data["originator"] != "Neha Joshi" || data["department"] != "DESIGN - PMTPL" || data["approver"] != "" {
		t.Errorf("Unexpected defaults for employee: %v", data)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/dmrns/defaults", nil, testutil.ReadOnlyTestToken())
	data = testutil.Data(t, w)
	if data["originator"] != "Read Only" || data["department"] != "" {
		t.Errorf("Unexpected defaults for non-employee: %v", data)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/dmrns/defaults", nil, testutil.GuestTestToken())
	data = testutil.Data(t, w)
	if len(data) != 0 {
		t.Errorf("Expected empty defaults for guest, got %v", data)
	}
}
