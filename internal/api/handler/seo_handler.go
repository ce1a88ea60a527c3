package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

const robotsBody = `User-agent: *
Allow: /

Sitemap: %s/sitemap.xml
`

// SEOHandler serves robots.txt and the sitemap. The sitemap lists the
// homepage, the admin login, and one URL per member with its avatar as an
// image entry.
type SEOHandler struct {
	directory ports.MemberDirectory
	baseURL   string
}

func NewSEOHandler(directory ports.MemberDirectory, baseURL string) *SEOHandler {
	return &SEOHandler{directory: directory, baseURL: baseURL}
}

// Robots serves a permissive robots.txt pointing at the sitemap.
func (h *SEOHandler) Robots(c echo.Context) error {
	return c.String(http.StatusOK, fmt.Sprintf(robotsBody, h.baseURL))
}

// Sitemap generates the sitemap from the live member list. A member fetch
// failure degrades to the static pages rather than a 500; crawlers retry.
//
// The image extension namespace is written by hand: encoding/xml cannot
// emit literal prefixed element names like image:loc.
func (h *SEOHandler) Sitemap(c echo.Context) error {
	today := time.Now().UTC().Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:image="http://www.google.com/schemas/sitemap-image/1.1">` + "\n")

	writeURL := func(loc, lastmod, imageLoc string) {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", xmlEscape(loc))
		if lastmod != "" {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod)
		}
		if imageLoc != "" {
			b.WriteString("    <image:image>\n")
			fmt.Fprintf(&b, "      <image:loc>%s</image:loc>\n", xmlEscape(imageLoc))
			b.WriteString("    </image:image>\n")
		}
		b.WriteString("  </url>\n")
	}

	writeURL(h.baseURL+"/", today, "")
	writeURL(h.baseURL+"/admin", today, "")

	if members, err := h.directory.Members(c.Request().Context()); err == nil {
		for _, m := range members {
			writeURL(h.baseURL+"/member/"+url.PathEscape(m.Name), "", m.AvatarURL)
		}
	}

	b.WriteString("</urlset>\n")
	return c.Blob(http.StatusOK, "application/xml", []byte(b.String()))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
