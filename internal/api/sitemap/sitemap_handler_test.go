package sitemap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSitemapService struct {
	mock.Mock
}

func (m *MockSitemapService) BuildCitySitemap(ctx context.Context) *CitySitemap {
	args := m.Called(ctx)
	return args.Get(0).(*CitySitemap)
}

func setupSitemapHandlerTest() (*Handler, *MockSitemapService) {
	service := new(MockSitemapService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(service, testBase, logger), service
}

func TestHandler_CitySitemap(t *testing.T) {
	t.Run("serves xml", func(t *testing.T) {
		h, service := setupSitemapHandlerTest()
		body := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n</urlset>"
		service.On("BuildCitySitemap", mock.Anything).Return(&CitySitemap{XML: body, PagesRead: 1}).Once()

		rr := httptest.NewRecorder()
		h.CitySitemap(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/xml; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, body, rr.Body.String())
		service.AssertExpectations(t)
	})

	t.Run("partial sitemap is still 200", func(t *testing.T) {
		h, service := setupSitemapHandlerTest()
		service.On("BuildCitySitemap", mock.Anything).Return(&CitySitemap{XML: "<urlset/>", Partial: true}).Once()

		rr := httptest.NewRecorder()
		h.CitySitemap(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "<urlset/>", rr.Body.String())
		service.AssertExpectations(t)
	})
}

func TestHandler_Robots(t *testing.T) {
	h, _ := setupSitemapHandlerTest()

	rr := httptest.NewRecorder()
	h.Robots(rr, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Disallow: /api/\n")
	assert.Contains(t, rr.Body.String(), "Sitemap: "+testBase+"/sitemap.xml\n")
}
