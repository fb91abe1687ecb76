package docs

import (
	"encoding/json"
	"testing"
)

func TestSwaggerDocumentCoversAPI(t *testing.T) {
	var doc struct {
		Paths               map[string]json.RawMessage `json:"paths"`
		SecurityDefinitions map[string]json.RawMessage `json:"securityDefinitions"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("rendered document is not valid JSON: %v", err)
	}

	if len(doc.Paths) == 0 {
		t.Fatalf("document has no paths")
	}
	for _, path := range []string{
		"/auth/register", "/auth/login", "/auth/profile",
		"/reports", "/reports/{id}", "/reports/{id}/status",
		"/plants", "/diseases", "/alerts", "/farmers",
		"/stats/overview", "/stats/geographical",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("document missing path %s", path)
		}
	}
	if _, ok := doc.SecurityDefinitions["BearerAuth"]; !ok {
		t.Fatalf("document missing BearerAuth security definition")
	}
}
