package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/handlers"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/middleware"
)

// BuildRouter wires the route tree. Every route runs behind the session
// cookie middleware; authenticated groups add the token guard, CSRF check
// and the role policy where it applies.
func BuildRouter(
	ah *handlers.AuthHandlers,
	sh *handlers.SignupHandlers,
	dh *handlers.DropHandlers,
	gh *handlers.GuardianHandlers,
	sessionmw *middleware.SessionCookieMW,
	authmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessionmw.Handler())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/signup", ah.Signup)
	auth.POST("/logout", ah.Logout)
	auth.POST("/refresh", ah.Refresh)
	auth.GET("/oauth/:provider", ah.OAuthBegin)
	auth.GET("/callback", ah.OAuthCallback)
	auth.POST("/callback", ah.OAuthCallback) // Apple posts the form back
	auth.GET("/me", ah.Me)

	// The wizard runs pre- and mid-onboarding, so it only needs the
	// session cookie, not a fully onboarded token.
	signup := r.Group("/signup").Use(authmw.WithCSRF())
	signup.GET("/step", sh.GetStep)
	signup.POST("/step", sh.SubmitStep)
	signup.POST("/back", sh.Back)

	onboarding := r.Group("/onboarding")
	onboarding.GET("/role", sh.OnboardingView(domain.StepUserType))
	onboarding.GET("/birthdate", sh.OnboardingView(domain.StepBirthdate))
	onboarding.GET("/phone", sh.OnboardingView(domain.StepPhoneNumber))
	onboarding.GET("/guardian", sh.OnboardingView(domain.StepGuardianPending))

	// Approval links land on the guardian's device with no session.
	r.POST("/guardian/approve/:approvalId", gh.Approve)

	// Marketing funnel scratch data: available before authentication.
	dropdata := r.Group("/dropdata").Use(authmw.WithCSRF())
	dropdata.GET("", dh.GetDropData)
	dropdata.PUT("", dh.PutDropData)
	dropdata.DELETE("", dh.DeleteDropData)

	lookup := r.Group("/lookup")
	lookup.GET("/templates", dh.Templates())
	lookup.GET("/videos", dh.Videos())
	lookup.GET("/topics", dh.Topics())
	lookup.GET("/schools", dh.Schools())
	lookup.GET("/grades", dh.Grades())

	dash := r.Group("/dashboard").Use(authmw.WithAuth(), cb.Enforce())
	dash.GET("", dh.Dashboard)
	dash.GET("/drops", dh.DashboardDrops)
	dash.GET("/profile", dh.DashboardProfile)

	educator := r.Group("/educator").Use(authmw.WithAuth(), cb.Enforce())
	educator.GET("/drops", dh.EducatorDrops)

	drops := r.Group("/drops").Use(authmw.WithAuth(), authmw.WithCSRF(), cb.Enforce())
	drops.POST("", dh.CreateDrop)
	drops.POST("/:id/publish", dh.PublishDrop)

	return r
}
