package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skillswap/internal/ai"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
}

type matchItem struct {
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	MatchScore   int       `json:"match_score"`
	TheyCanTeach []string  `json:"they_can_teach"`
	YouCanTeach  []string  `json:"you_can_teach"`
	Explanation  string    `json:"explanation"`
}

type matchListData struct {
	Matches []matchItem `json:"matches"`
	Total   int         `json:"total"`
	Message string      `json:"message"`
}

func TestIntegration_RegisterSkillsAndMatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	app := newTestFiberApp(t, db)

	// Two fresh members with complementary skills.
	suffix := uuid.NewString()[:8]
	mentor := registerUser(t, app, "mentor-"+suffix+"@example.com", "Mentor "+suffix)
	learner := registerUser(t, app, "learner-"+suffix+"@example.com", "Learner "+suffix)
	defer cleanupUsers(t, ctx, db, mentor.User.ID, learner.User.ID)

	goID := ensureSkill(t, ctx, db, "Go")
	figmaID := ensureSkill(t, ctx, db, "Figma")

	addUserSkill(t, app, mentor.AccessToken, goID, "Expert")
	addUserSkill(t, app, mentor.AccessToken, figmaID, "Beginner")
	addUserSkill(t, app, learner.AccessToken, goID, "Beginner")

	list := callMatches(t, app, learner.AccessToken)
	if list.Total < 1 || len(list.Matches) < 1 {
		t.Fatalf("expected at least one match, got total=%d", list.Total)
	}

	var found *matchItem
	for i := range list.Matches {
		if list.Matches[i].UserID == mentor.User.ID {
			found = &list.Matches[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected the mentor to appear in matches")
	}
	// Shared Go at a three-level gap plus Figma to teach: 10 + 15 + 10 = 35.
	if found.MatchScore != 35 {
		t.Fatalf("expected match score 35, got %d", found.MatchScore)
	}
	if len(found.TheyCanTeach) != 1 || found.TheyCanTeach[0] != "Figma" {
		t.Fatalf("expected they_can_teach=[Figma], got %v", found.TheyCanTeach)
	}
	if found.Explanation == "" {
		t.Fatalf("expected a non-empty explanation")
	}

	// A fresh member with no skills gets guidance, not an error.
	empty := registerUser(t, app, "empty-"+suffix+"@example.com", "Empty "+suffix)
	defer cleanupUsers(t, ctx, db, empty.User.ID)

	emptyList := callMatches(t, app, empty.AccessToken)
	if len(emptyList.Matches) != 0 || emptyList.Message == "" {
		t.Fatalf("expected empty result with message, got %+v", emptyList)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := envOrDefault("SKILLSWAP_TEST_DB_HOST", os.Getenv("DB_HOST"))
	port := envOrDefault("SKILLSWAP_TEST_DB_PORT", os.Getenv("DB_PORT"))
	name := envOrDefault("SKILLSWAP_TEST_DB_NAME", os.Getenv("DB_NAME"))
	user := envOrDefault("SKILLSWAP_TEST_DB_USER", os.Getenv("DB_USER"))
	pass := envOrDefault("SKILLSWAP_TEST_DB_PASSWORD", os.Getenv("DB_PASSWORD"))
	ssl := envOrDefault("SKILLSWAP_TEST_DB_SSL_MODE", os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}
	migDir := filepath.Join(filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..")), "migrations")

	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "skillswap-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}

	hub := ws.NewHub(nil)
	go hub.Run()

	app := fiber.New(fiber.Config{})
	routes.NewRegistry(routes.Deps{
		Config:    cfg,
		DB:        db,
		Explainer: ai.NewTemplateExplainer(),
		Hub:       hub,
	}).Register(app)
	return app
}

func registerUser(t *testing.T, app *fiber.App, email, displayName string) authData {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":        email,
		"password":     "integration-pass-1",
		"display_name": displayName,
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("register decode error: %v", err)
	}
	if sr.Status != 201 {
		t.Fatalf("register: expected status=201, got %d (message=%s)", sr.Status, sr.Message)
	}

	var out authData
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("register: data unmarshal error: %v", err)
	}
	if out.AccessToken == "" || out.User.ID == uuid.Nil {
		t.Fatalf("register: missing access_token or user id")
	}
	return out
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, 'General') ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		t.Fatalf("ensure skill %s: %v", name, err)
	}

	var id uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = $1`, name).Scan(&id); err != nil {
		t.Fatalf("lookup skill %s: %v", name, err)
	}
	return id
}

func addUserSkill(t *testing.T, app *fiber.App, token string, skillID uuid.UUID, level string) {
	t.Helper()

	body, _ := json.Marshal(map[string]any{
		"skill_id":          skillID,
		"proficiency_level": level,
	})
	req := httptest.NewRequest("POST", "/api/v1/me/skills/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("add skill request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("add skill decode error: %v", err)
	}
	if sr.Status != 201 {
		t.Fatalf("add skill: expected status=201, got %d (message=%s)", sr.Status, sr.Message)
	}
}

func callMatches(t *testing.T, app *fiber.App, token string) matchListData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/matches", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("matches request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("matches decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("matches: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var out matchListData
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("matches: data unmarshal error: %v", err)
	}
	return out
}

func cleanupUsers(t *testing.T, ctx context.Context, db database.DB, ids ...uuid.UUID) {
	t.Helper()

	for _, id := range ids {
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
