package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"lighthouse.app/internal/core/session"
)

func authenticated() session.Session {
	name, token := "alice", "tok123"
	return session.Session{Username: &name, JWT: &token, IsAuthenticated: true}
}

func TestGuard(t *testing.T) {
	for _, route := range Routes() {
		t.Run(string(route), func(t *testing.T) {
			anon := Guard(route, session.Default())
			if route.IsProtected() {
				assert.Equal(t, Decision{Allow: false, RedirectTo: RouteAuth}, anon)
			} else {
				assert.Equal(t, Decision{Allow: true}, anon)
			}

			assert.Equal(t, Decision{Allow: true}, Guard(route, authenticated()))
		})
	}
}

func TestRoute_Paths(t *testing.T) {
	assert.Equal(t, "/auth", RouteAuth.Path())
	assert.Equal(t, "/explore", RouteExplore.Path())
	assert.True(t, RouteProfile.IsValid())
	assert.False(t, Route("settings").IsValid())
	assert.Equal(t, "", Route("settings").Path())
}

func TestRoute_IsProtected(t *testing.T) {
	assert.True(t, RouteHome.IsProtected())
	assert.True(t, RouteExplore.IsProtected())
	assert.True(t, RouteProfile.IsProtected())
	assert.False(t, RouteAuth.IsProtected())
	assert.False(t, RouteLogin.IsProtected())
	assert.False(t, RouteRegister.IsProtected())
}
