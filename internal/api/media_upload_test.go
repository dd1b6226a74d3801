package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestUploadImageReturnsMediaURL(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	session := adminSession(t, portal, "80001")

	response := postMultipart(t, portal.app, "/admin/upload-image", session, "image", "board photo.jpg", []byte("jpeg-bytes"), map[string]string{"slug": "board"})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)

	payload := decodeJSONBody(t, response.Body)
	url := payload["url"]
	if url != "/media/board/board_photo.jpg" {
		t.Fatalf("unexpected media url %q", url)
	}

	served := getPage(t, portal.app, url, "")
	requireStatus(t, served, http.StatusOK)
	if body := readBody(t, served); body != "jpeg-bytes" {
		t.Fatalf("served media mismatch: %q", body)
	}
	served.Body.Close()
}

func TestUploadImageSanitizesHostileNames(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	session := adminSession(t, portal, "80002")

	response := postMultipart(t, portal.app, "/admin/upload-image", session, "image", "../../evil.sh", []byte("#!/bin/sh"), map[string]string{"slug": "../etc"})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)

	payload := decodeJSONBody(t, response.Body)
	if strings.Contains(payload["url"], "..") {
		t.Fatalf("sanitized url still contains traversal: %q", payload["url"])
	}
	if !strings.HasPrefix(payload["url"], "/media/") {
		t.Fatalf("unexpected media url %q", payload["url"])
	}
}

func TestServeMediaRejectsTraversal(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)

	for _, path := range []string{
		"/media/..%2f..%2fetc%2fpasswd",
		"/media/%2e%2e/%2e%2e/etc/passwd",
	} {
		response := getPage(t, portal.app, path, "")
		requireStatus(t, response, http.StatusNotFound)
		response.Body.Close()
	}
}

func TestUploadImageRequiresAdmin(t *testing.T) {
	t.Parallel()

	portal := newTestPortal(t)
	createPortalUser(t, portal.database, "80003", "plain@example.com", "MemberSecret1", false)
	session := loginAndExtractSessionCookie(t, portal.app, "80003", "MemberSecret1")

	response := postMultipart(t, portal.app, "/admin/upload-image", session, "image", "x.png", []byte("png"), nil)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusForbidden)
}
