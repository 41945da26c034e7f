package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"staffloop/auth"
	"staffloop/broadcast"
	"staffloop/checkin"
	"staffloop/drafts"
	"staffloop/events"
	"staffloop/middleware"
	"staffloop/ratelim"
	"staffloop/reports"
	"staffloop/staff"
	"staffloop/staffing"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/selfiepic/*filepath", http.Dir("static/selfiepic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddEventsRoutes(router *httprouter.Router) {
	router.GET("/api/events/events", ratelim.RateLimit(middleware.OptionalAuth(events.GetEvents)))
	router.GET("/api/events/events/count", ratelim.RateLimit(events.GetEventsCount))
	router.POST("/api/events/event", middleware.Authenticate(events.CreateEvent))
	router.GET("/api/events/event/:eventid", middleware.OptionalAuth(events.GetEvent))
	router.PUT("/api/events/event/:eventid", middleware.Authenticate(events.EditEvent))
	router.PUT("/api/events/event/:eventid/status", middleware.Authenticate(events.UpdateEventStatus))
	router.DELETE("/api/events/event/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.GET("/api/events/event/:eventid/calendar.ics", ratelim.RateLimit(events.ExportEventICS))
}

func AddDraftRoutes(router *httprouter.Router) {
	router.POST("/api/drafts/autosave", middleware.Authenticate(drafts.AutosaveDraft))
	router.GET("/api/drafts/autosave", middleware.Authenticate(drafts.GetAutosavedDraft))
	router.DELETE("/api/drafts/autosave", middleware.Authenticate(drafts.DiscardAutosavedDraft))
	router.POST("/api/drafts/draft", ratelim.RateLimit(middleware.Authenticate(drafts.SaveDraft)))
	router.POST("/api/wizard/session", ratelim.RateLimit(middleware.Authenticate(drafts.OpenWizard)))
	router.POST("/api/wizard/action", middleware.Authenticate(drafts.WizardAction))
	router.POST("/api/wizard/advance", middleware.Authenticate(drafts.WizardAdvance))
	router.POST("/api/wizard/back", middleware.Authenticate(drafts.WizardBack))
	router.POST("/api/wizard/cancel", middleware.Authenticate(drafts.WizardCancel))
	router.POST("/api/wizard/submit", ratelim.RateLimit(middleware.Authenticate(drafts.WizardSubmit)))
	router.GET("/api/drafts/draft/:eventid", middleware.Authenticate(drafts.GetDraft))
	router.DELETE("/api/drafts/draft/:eventid", middleware.Authenticate(drafts.DeleteDraft))
}

func AddStaffRoutes(router *httprouter.Router) {
	router.GET("/api/staff/staff", middleware.Authenticate(staff.GetStaff))
	router.GET("/api/staff/roles", middleware.Authenticate(staff.GetStaffRoles))
	router.GET("/api/staff/staff/:staffid", middleware.Authenticate(staff.GetStaffByID))
	router.POST("/api/staff/staff", ratelim.RateLimit(middleware.Authenticate(staff.CreateStaff)))

	roster := staff.MongoRoster{}
	router.GET("/api/staffing/search", middleware.Authenticate(staffing.SearchAssignable(roster)))
}

func AddSupervisorRoutes(router *httprouter.Router) {
	router.POST("/api/supervisor/token", ratelim.RateLimit(middleware.Authenticate(staffing.GenerateSupervisorToken)))
	router.GET("/api/supervisor/tokens/:eventid", middleware.Authenticate(staffing.GetSupervisorTokens))
	router.GET("/api/supervisor/token/:tokenid/qr", ratelim.RateLimit(staffing.TokenQR))
	router.POST("/api/supervisor/verify", ratelim.RateLimit(staffing.VerifySupervisorToken))
}

func AddCheckinRoutes(router *httprouter.Router) {
	router.POST("/api/checkin", ratelim.RateLimit(middleware.Authenticate(checkin.CheckIn)))
	router.POST("/api/checkout", ratelim.RateLimit(middleware.Authenticate(checkin.CheckOut)))
	router.GET("/api/checkin/event/:eventid", middleware.Authenticate(checkin.GetEventAttendance))
	router.POST("/api/checkin/selfie/:checkinid", ratelim.RateLimit(middleware.Authenticate(checkin.UploadSelfie)))
	router.POST("/api/enroll/request-otp", ratelim.RateLimit(middleware.Authenticate(checkin.RequestEnrollmentOTP)))
	router.POST("/api/enroll/verify-otp", ratelim.RateLimit(middleware.Authenticate(checkin.VerifyEnrollmentOTP)))
}

func AddBroadcastRoutes(router *httprouter.Router, hub *broadcast.Hub) {
	router.GET("/ws/events/:eventid", middleware.Authenticate(broadcast.ServeWS(hub)))
	router.POST("/api/broadcasts/:eventid", ratelim.RateLimit(middleware.Authenticate(broadcast.SendBroadcast(hub))))
	router.GET("/api/broadcasts/:eventid", middleware.Authenticate(broadcast.GetBroadcasts))
}

func AddReportRoutes(router *httprouter.Router) {
	router.GET("/api/reports/attendance/:eventid", middleware.Authenticate(reports.GetAttendanceReport))
	router.GET("/api/reports/attendance/:eventid/pdf", ratelim.RateLimit(middleware.Authenticate(reports.ExportAttendancePDF)))
}
