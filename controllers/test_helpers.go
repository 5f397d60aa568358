// file: controllers/test_helpers.go
package controllers

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// setupTestRouter creates a Gin engine with session middleware, matching
// the wiring main.go applies.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	return router
}

// setSession registers a helper route that writes the given key/value
// pairs into the session and returns the resulting session cookie.
func setSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "testsession" {
			return ck
		}
	}
	return nil
}

// hashPassword prepares a bcrypt hash for login tests.
func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to hash password: " + err.Error())
	}
	return string(hashed)
}
