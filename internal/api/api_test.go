package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/denizak/lootledger/internal/auth"
	"github.com/denizak/lootledger/internal/storage/sqlite"
)

// setupTestServer spins up the full router over a temp database with a
// seeded admin account, and returns the server plus an admin token.
func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lootledger-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	if err := authenticator.SeedAdmin(t.Context(), "admin", "test-password"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	server := httptest.NewServer(NewRouter(store, authenticator, jwtManager))
	t.Cleanup(server.Close)

	resp := doRequest(t, server, http.MethodPost, "/api/auth/login", "",
		map[string]any{"username": "admin", "password": "test-password"})
	if resp.status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.status)
	}
	token, _ := resp.body["token"].(string)
	if token == "" {
		t.Fatal("expected a session token")
	}

	return server, token
}

type testResponse struct {
	status int
	body   map[string]any
}

func doRequest(t *testing.T, server *httptest.Server, method, path, token string, payload any) testResponse {
	t.Helper()

	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	decoded := make(map[string]any)
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return testResponse{status: resp.StatusCode, body: decoded}
}

// createGroup is a test helper returning the new group's ID and its
// member IDs keyed by name.
func createGroup(t *testing.T, server *httptest.Server, token, name string, players []string) (string, map[string]string) {
	t.Helper()

	resp := doRequest(t, server, http.MethodPost, "/api/groups", token,
		map[string]any{"name": name, "players": players})
	if resp.status != http.StatusOK {
		t.Fatalf("create group status = %d: %v", resp.status, resp.body)
	}

	group := resp.body["group"].(map[string]any)
	groupID := group["id"].(string)
	members := make(map[string]string)
	for _, m := range group["members"].([]any) {
		member := m.(map[string]any)
		members[member["name"].(string)] = member["id"].(string)
	}
	return groupID, members
}

func saveItem(t *testing.T, server *httptest.Server, token string, item map[string]any) string {
	t.Helper()

	resp := doRequest(t, server, http.MethodPost, "/api/items", token, item)
	if resp.status != http.StatusOK {
		t.Fatalf("save item status = %d: %v", resp.status, resp.body)
	}
	return resp.body["item"].(map[string]any)["id"].(string)
}

func TestLogin(t *testing.T) {
	server, _ := setupTestServer(t)

	t.Run("wrong password rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/auth/login", "",
			map[string]any{"username": "admin", "password": "wrong"})
		if resp.status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.status)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/auth/login", "",
			map[string]any{"username": "admin"})
		if resp.status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.status)
		}
	})

	t.Run("session reflects token", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/auth/session", "", nil)
		if resp.body["authenticated"] != false {
			t.Error("anonymous session should not be authenticated")
		}
	})
}

func TestAdminGate(t *testing.T) {
	server, token := setupTestServer(t)

	t.Run("anonymous mutation rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/groups", "",
			map[string]any{"name": "Dungeon", "players": []string{"Alice"}})
		if resp.status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.status)
		}
		if resp.body["success"] != false {
			t.Error("expected success=false envelope")
		}
	})

	t.Run("invalid token treated as anonymous", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodDelete, "/api/players/some-id", "garbage", nil)
		if resp.status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.status)
		}
	})

	t.Run("reads stay public", func(t *testing.T) {
		groupID, _ := createGroup(t, server, token, "Dungeon", []string{"Alice"})

		for _, path := range []string{
			"/api/groups",
			"/api/groups/" + groupID,
			"/api/groups/" + groupID + "/earnings",
			"/api/groups/" + groupID + "/paid",
			"/api/players",
			"/api/report",
			"/api/receivables",
		} {
			resp := doRequest(t, server, http.MethodGet, path, "", nil)
			if resp.status != http.StatusOK {
				t.Errorf("GET %s status = %d, want 200", path, resp.status)
			}
		}
	})
}

func TestGroupLifecycle(t *testing.T) {
	server, token := setupTestServer(t)

	groupID, members := createGroup(t, server, token, "Dungeon", []string{"Alice", "Bob"})

	t.Run("validation rejects empty group", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/groups", token,
			map[string]any{"name": "", "players": []string{}})
		if resp.status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.status)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/groups", token,
			map[string]any{"name": "Dungeon", "players": []string{"Carol"}})
		if resp.status != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.status)
		}
	})

	t.Run("detail includes members and items", func(t *testing.T) {
		saveItem(t, server, token, map[string]any{
			"group_id": groupID, "name": "Sword", "price": 300.0,
			"seller_id": members["Alice"], "status": "sold",
		})

		resp := doRequest(t, server, http.MethodGet, "/api/groups/"+groupID, "", nil)
		group := resp.body["group"].(map[string]any)
		if len(group["members"].([]any)) != 2 {
			t.Errorf("members = %v, want 2", group["members"])
		}
		items := group["items"].([]any)
		if len(items) != 1 {
			t.Fatalf("items = %v, want 1", items)
		}
		if items[0].(map[string]any)["seller_name"] != "Alice" {
			t.Errorf("seller_name = %v, want Alice", items[0].(map[string]any)["seller_name"])
		}
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/groups/no-such-id", "", nil)
		if resp.status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.status)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodDelete, "/api/groups/"+groupID, token, nil)
		if resp.status != http.StatusOK {
			t.Fatalf("delete status = %d", resp.status)
		}
		resp = doRequest(t, server, http.MethodGet, "/api/groups/"+groupID, "", nil)
		if resp.status != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", resp.status)
		}
	})
}

func TestEarningsView(t *testing.T) {
	server, token := setupTestServer(t)

	groupID, members := createGroup(t, server, token, "Dungeon", []string{"Alice", "Bob"})

	// External seller Carol is a global player, not a member.
	resp := doRequest(t, server, http.MethodPost, "/api/players", token,
		map[string]any{"name": "Carol"})
	carolID := resp.body["player"].(map[string]any)["id"].(string)

	saveItem(t, server, token, map[string]any{
		"group_id": groupID, "name": "Sword", "price": 300.0,
		"seller_id": members["Alice"], "status": "sold",
	})
	saveItem(t, server, token, map[string]any{
		"group_id": groupID, "name": "Shield", "price": 100.0,
		"seller_id": carolID, "status": "sold",
	})

	resp = doRequest(t, server, http.MethodPut, "/api/groups/"+groupID+"/paid/"+members["Bob"], token,
		map[string]any{"amount": 160.0})
	if resp.status != http.StatusOK {
		t.Fatalf("paid update status = %d", resp.status)
	}

	resp = doRequest(t, server, http.MethodGet, "/api/groups/"+groupID+"/earnings", "", nil)
	rows := resp.body["earnings"].([]any)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (two members plus external seller)", len(rows))
	}

	byName := make(map[string]map[string]any)
	for _, r := range rows {
		row := r.(map[string]any)
		byName[row["name"].(string)] = row
	}

	// Sword: unit 300/2.5 = 120, Alice 120+60; Shield: 100/2.5 = 40 each,
	// Carol 20.
	if got := byName["Alice"]["earned"].(float64); math.Abs(got-220.0) > 1e-9 {
		t.Errorf("Alice earned = %v, want 220", got)
	}
	bob := byName["Bob"]
	if got := bob["earned"].(float64); math.Abs(got-160.0) > 1e-9 {
		t.Errorf("Bob earned = %v, want 160", got)
	}
	if bob["fully_paid"] != true {
		t.Error("Bob should be fully paid")
	}
	if got := bob["remaining"].(float64); math.Abs(got) > 1e-9 {
		t.Errorf("Bob remaining = %v, want 0", got)
	}

	carol := byName["Carol"]
	if got := carol["earned"].(float64); math.Abs(got-20.0) > 1e-9 {
		t.Errorf("Carol earned = %v, want 20", got)
	}
	if carol["member"] != false {
		t.Error("Carol must be flagged as non-member")
	}
}

func TestPaidAmountValidation(t *testing.T) {
	server, token := setupTestServer(t)
	groupID, members := createGroup(t, server, token, "Dungeon", []string{"Alice"})
	path := "/api/groups/" + groupID + "/paid/" + members["Alice"]

	t.Run("missing amount rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPut, path, token, map[string]any{})
		if resp.status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.status)
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPut, path, token, map[string]any{"amount": -5.0})
		if resp.status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.status)
		}
	})

	t.Run("upsert keeps latest value", func(t *testing.T) {
		doRequest(t, server, http.MethodPut, path, token, map[string]any{"amount": 40.0})
		doRequest(t, server, http.MethodPut, path, token, map[string]any{"amount": 75.0})

		resp := doRequest(t, server, http.MethodGet, "/api/groups/"+groupID+"/paid", "", nil)
		amounts := resp.body["paid_amounts"].(map[string]any)
		if len(amounts) != 1 {
			t.Fatalf("amounts = %v, want one entry", amounts)
		}
		if amounts[members["Alice"]].(float64) != 75.0 {
			t.Errorf("amount = %v, want 75", amounts[members["Alice"]])
		}
	})
}

func TestPlayerDeletionGuard(t *testing.T) {
	server, token := setupTestServer(t)
	groupID, members := createGroup(t, server, token, "Dungeon", []string{"Alice"})

	t.Run("member deletion conflicts", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodDelete, "/api/players/"+members["Alice"], token, nil)
		if resp.status != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.status)
		}
	})

	t.Run("deletion succeeds after group removal", func(t *testing.T) {
		doRequest(t, server, http.MethodDelete, "/api/groups/"+groupID, token, nil)

		resp := doRequest(t, server, http.MethodDelete, "/api/players/"+members["Alice"], token, nil)
		if resp.status != http.StatusOK {
			t.Errorf("status = %d, want 200: %v", resp.status, resp.body)
		}
	})
}

func TestItemValidation(t *testing.T) {
	server, token := setupTestServer(t)
	groupID, _ := createGroup(t, server, token, "Dungeon", []string{"Alice"})

	tests := []struct {
		name string
		item map[string]any
		want int
	}{
		{"missing name", map[string]any{"group_id": groupID, "status": "pending"}, http.StatusBadRequest},
		{"bad status", map[string]any{"group_id": groupID, "name": "X", "status": "lost"}, http.StatusBadRequest},
		{"negative price", map[string]any{"group_id": groupID, "name": "X", "status": "sold", "price": -1.0}, http.StatusBadRequest},
		{"unknown group", map[string]any{"group_id": "nope", "name": "X", "status": "pending"}, http.StatusNotFound},
		{"no price is fine", map[string]any{"group_id": groupID, "name": "X", "status": "pending"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, server, http.MethodPost, "/api/items", token, tt.item)
			if resp.status != tt.want {
				t.Errorf("status = %d, want %d: %v", resp.status, tt.want, resp.body)
			}
		})
	}
}

func TestReceivablesAndReport(t *testing.T) {
	server, token := setupTestServer(t)

	// Dungeon is fully sold; Raid has a pending item and must not
	// contribute earnings.
	dungeonID, dungeonMembers := createGroup(t, server, token, "Dungeon", []string{"Alice", "Bob"})
	raidID, _ := createGroup(t, server, token, "Raid", []string{"Bob"})

	saveItem(t, server, token, map[string]any{
		"group_id": dungeonID, "name": "Sword", "price": 300.0,
		"seller_id": dungeonMembers["Alice"], "status": "sold",
	})
	saveItem(t, server, token, map[string]any{
		"group_id": raidID, "name": "Crown", "price": 1000.0, "status": "pending",
	})

	doRequest(t, server, http.MethodPut, "/api/groups/"+raidID+"/paid/"+dungeonMembers["Bob"], token,
		map[string]any{"amount": 30.0})

	t.Run("receivables", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/receivables", "", nil)
		rows := resp.body["receivables"].([]any)
		if len(rows) != 2 {
			t.Fatalf("len(rows) = %d, want 2", len(rows))
		}

		// Descending by earned: Alice 180, Bob 120.
		first := rows[0].(map[string]any)
		second := rows[1].(map[string]any)
		if first["name"] != "Alice" || math.Abs(first["total_earned"].(float64)-180.0) > 1e-9 {
			t.Errorf("first row = %v, want Alice with 180", first)
		}
		if second["name"] != "Bob" || math.Abs(second["total_earned"].(float64)-120.0) > 1e-9 {
			t.Errorf("second row = %v, want Bob with 120", second)
		}
		// Paid counts even though Raid is not fully sold.
		if second["total_paid"].(float64) != 30.0 {
			t.Errorf("Bob paid = %v, want 30", second["total_paid"])
		}
		groups := first["groups"].([]any)
		if len(groups) != 1 || groups[0] != "Dungeon" {
			t.Errorf("Alice groups = %v, want [Dungeon]", groups)
		}
	})

	t.Run("report", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/report", "", nil)
		report := resp.body["report"].(map[string]any)
		if report["group_count"].(float64) != 2 || report["item_count"].(float64) != 2 {
			t.Errorf("report counts = %v", report)
		}
		if report["total_sold_value"].(float64) != 300.0 {
			t.Errorf("sold value = %v, want 300", report["total_sold_value"])
		}
		if report["total_pending_value"].(float64) != 1000.0 {
			t.Errorf("pending value = %v, want 1000", report["total_pending_value"])
		}
	})
}
