// file: middleware/admin_required_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAdminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	// helper route to mark the session as admin
	router.GET("/grant", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("isAdmin", true)
		_ = session.Save()
		c.String(http.StatusOK, "ok")
	})

	protected := router.Group("/", AdminRequired())
	protected.GET("/admin-only", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome, admin!"})
	})

	return router
}

func adminCookie(router *gin.Engine) *http.Cookie {
	req, _ := http.NewRequest("GET", "/grant", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "testsession" {
			return c
		}
	}
	return nil
}

// TestAdminRequired_Success ensures an admin can access the protected route
func TestAdminRequired_Success(t *testing.T) {
	router := setupAdminTestRouter()

	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.AddCookie(adminCookie(router))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestAdminRequired_Blocked ensures an anonymous request is rejected
func TestAdminRequired_Blocked(t *testing.T) {
	router := setupAdminTestRouter()

	req, _ := http.NewRequest("GET", "/admin-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}
