package templates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTemplateFixture(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&MessageTemplate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewService(NewRepository(db))
}

func TestRenderBodySubstitutesPlaceholders(t *testing.T) {
	body := "Hi {{firstName}}, your room {{roomNumber}} is ready."
	rendered := RenderBody(body, map[string]string{
		"firstName":  "Grace",
		"roomNumber": "204",
	})
	want := "Hi Grace, your room 204 is ready."
	if rendered != want {
		t.Errorf("got %q, want %q", rendered, want)
	}
}

func TestRenderBodyDropsUnknownPlaceholders(t *testing.T) {
	rendered := RenderBody("Hi {{firstName}} {{ nickname }}!", map[string]string{
		"firstName": "Grace",
	})
	if rendered != "Hi Grace !" {
		t.Errorf("unknown placeholders must render empty, got %q", rendered)
	}
}

func TestPlaceholdersListsDistinctNamesInOrder(t *testing.T) {
	names := Placeholders("{{b}} {{a}} {{b}}")
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("got %v, want [b a]", names)
	}
}

func TestRenderPrefersPropertyScopedTemplate(t *testing.T) {
	svc := newTemplateFixture(t)
	staffID := uuid.New()
	propertyID := uuid.New()

	if _, err := svc.CreateTemplate(staffID, CreateTemplateRequest{
		Name: "Checked In",
		Body: "Welcome, {{firstName}}.",
	}); err != nil {
		t.Fatalf("failed to create global template: %v", err)
	}
	if _, err := svc.CreateTemplate(staffID, CreateTemplateRequest{
		PropertyID: propertyID.String(),
		Name:       "Checked In",
		Body:       "Welcome to the Grand, {{firstName}}.",
	}); err != nil {
		t.Fatalf("failed to create scoped template: %v", err)
	}

	rendered, err := svc.Render(context.Background(), propertyID, "Checked In", map[string]string{"firstName": "Grace"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rendered != "Welcome to the Grand, Grace." {
		t.Errorf("property template must win, got %q", rendered)
	}
}

func TestRenderFallsBackToGlobalTemplate(t *testing.T) {
	svc := newTemplateFixture(t)

	if _, err := svc.CreateTemplate(uuid.New(), CreateTemplateRequest{
		Name: "Checked Out",
		Body: "Goodbye, {{firstName}}.",
	}); err != nil {
		t.Fatalf("failed to create global template: %v", err)
	}

	rendered, err := svc.Render(context.Background(), uuid.New(), "Checked Out", map[string]string{"firstName": "Grace"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rendered != "Goodbye, Grace." {
		t.Errorf("got %q", rendered)
	}
}

func TestRenderDisabledScopedFallsBackToGlobal(t *testing.T) {
	svc := newTemplateFixture(t)
	staffID := uuid.New()
	propertyID := uuid.New()
	disabled := false

	if _, err := svc.CreateTemplate(staffID, CreateTemplateRequest{
		Name: "Checked In",
		Body: "Welcome.",
	}); err != nil {
		t.Fatalf("failed to create global template: %v", err)
	}
	if _, err := svc.CreateTemplate(staffID, CreateTemplateRequest{
		PropertyID: propertyID.String(),
		Name:       "Checked In",
		Body:       "Scoped welcome.",
		Enabled:    &disabled,
	}); err != nil {
		t.Fatalf("failed to create scoped template: %v", err)
	}

	rendered, err := svc.Render(context.Background(), propertyID, "Checked In", nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rendered != "Welcome." {
		t.Errorf("disabled scoped template must fall through, got %q", rendered)
	}
}

func TestRenderUnknownTemplateName(t *testing.T) {
	svc := newTemplateFixture(t)

	_, err := svc.Render(context.Background(), uuid.New(), "No Such Template", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestCreateTemplateRejectsDuplicateName(t *testing.T) {
	svc := newTemplateFixture(t)
	staffID := uuid.New()

	if _, err := svc.CreateTemplate(staffID, CreateTemplateRequest{Name: "Checked In", Body: "A"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateTemplate(staffID, CreateTemplateRequest{Name: "Checked In", Body: "B"})
	if !errors.Is(err, ErrTemplateNameExists) {
		t.Errorf("expected ErrTemplateNameExists, got %v", err)
	}
}
