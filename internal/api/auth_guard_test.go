package api

import (
	"net/http"
	"testing"
)

func TestMembersPageRequiresLogin(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)

	response := getPage(t, portal.app, "/members", "")
	defer response.Body.Close()
	requireStatus(t, response, http.StatusSeeOther)

	if location := response.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected redirect to /login, got %q", location)
	}
}

func TestAdminPagesBounceNonAdminsHome(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	createPortalUser(t, portal.database, "20001", "member@example.com", "SuperSecret1", false)
	session := loginAndExtractSessionCookie(t, portal.app, "20001", "SuperSecret1")

	for _, path := range []string{"/admin/users", "/admin/pages", "/admin/settings", "/admin/import"} {
		response := getPage(t, portal.app, path, session)
		requireStatus(t, response, http.StatusSeeOther)
		if location := response.Header.Get("Location"); location != "/" {
			t.Fatalf("%s: expected redirect to /, got %q", path, location)
		}
		response.Body.Close()
	}
}

func TestAdminJSONEndpointsAnswer403ForNonAdmins(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	createPortalUser(t, portal.database, "20002", "member2@example.com", "SuperSecret1", false)
	session := loginAndExtractSessionCookie(t, portal.app, "20002", "SuperSecret1")

	response := getPage(t, portal.app, "/admin/api/pages/1", session)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusForbidden)

	payload := decodeJSONBody(t, response.Body)
	if payload["error"] != "not authorized" {
		t.Fatalf("expected JSON error, got %v", payload)
	}
}

func TestAdminAreaAllowsAdmins(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	createPortalUser(t, portal.database, "20003", "admin@example.com", "SuperSecret1", true)
	session := loginAndExtractSessionCookie(t, portal.app, "20003", "SuperSecret1")

	response := getPage(t, portal.app, "/admin/users", session)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)
}

func TestGarbageSessionCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)

	response := getPage(t, portal.app, "/members", "user_id=not-a-number")
	defer response.Body.Close()
	requireStatus(t, response, http.StatusSeeOther)
}

func TestSessionCookieForMissingUserIsAnonymous(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)

	response := getPage(t, portal.app, "/members", "user_id=424242")
	defer response.Body.Close()
	requireStatus(t, response, http.StatusSeeOther)
}
