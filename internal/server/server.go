package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/middlewares"
	"github.com/prateekdahiya/campusconnect/internal/server/service"
	"github.com/prateekdahiya/campusconnect/internal/server/session"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	Database       database.Client
	NoRegistration bool
	// JWT params
	SigningKey          []byte
	TokenExpirationTime time.Duration
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.Database, ctrl.SigningKey, ctrl.TokenExpirationTime)

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(sessions))
	staff := middlewares.Staff()

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:       ctrl.Database,
		sessions: sessions,
	}
	if !ctrl.NoRegistration {
		router.POST("/auth/register", auth.Register)
	}
	router.POST("/auth/login", auth.Login)
	restricted.GET("/auth/profile", auth.Profile)
	restricted.POST("/auth/change_pw", auth.UpdatePassword)

	//
	// complaint handlers
	//
	complaint := &complaint{
		db: ctrl.Database,
	}
	restricted.GET("/complaints/all", complaint.List)
	restricted.GET("/complaints/hostel/:hostel", complaint.ListByHostel)
	restricted.POST("/complaints", complaint.Create)
	restricted.DELETE("/complaints/:id", complaint.Delete)
	restricted.PUT("/complaints/:id/status", complaint.UpdateStatus, staff)
	restricted.POST("/complaints/:id/remarks", complaint.AddRemark)
	restricted.PUT("/complaints/:id/assign", complaint.Assign, staff)
	restricted.PUT("/complaints/:id/satisfaction", complaint.Satisfaction)

	//
	// lost & found handlers
	//
	lostfound := &lostfound{
		db:      ctrl.Database,
		matcher: service.NewMatcher(ctrl.Database),
		claims:  service.NewClaims(ctrl.Database),
	}
	restricted.GET("/lostfound", lostfound.List)
	restricted.POST("/lostfound", lostfound.Report)
	restricted.DELETE("/lostfound/:id", lostfound.Delete)
	restricted.PUT("/lostfound/:id/resolve", lostfound.MarkFound)
	restricted.PUT("/lostfound/:id/found", lostfound.MarkFound)
	restricted.GET("/lostfound/:id/matches", lostfound.Matches)
	restricted.POST("/lostfound/:id/claim", lostfound.SubmitClaim)
	restricted.PUT("/lostfound/:id/claim/:claimID", lostfound.Adjudicate, staff)

	//
	// cycle handlers
	//
	cycle := &cycle{
		db: ctrl.Database,
	}
	restricted.GET("/cycles/available", cycle.Available)
	restricted.GET("/cycles/my", cycle.Mine)
	restricted.POST("/cycles", cycle.Create)
	restricted.PUT("/cycles/:id", cycle.Update)
	restricted.PUT("/cycles/:id/availability", cycle.SetAvailability)
	restricted.DELETE("/cycles/:id", cycle.Delete)

	//
	// booking handlers
	//
	booking := &booking{
		db:       ctrl.Database,
		bookings: service.NewBookings(ctrl.Database),
	}
	restricted.POST("/bookings/book/:cycleID", booking.Book)
	restricted.PUT("/bookings/return/:id", booking.Return)
	restricted.PUT("/bookings/extend/:id", booking.Extend)
	restricted.GET("/bookings/my", booking.Mine)
	restricted.GET("/bookings/pending", booking.Pending)
	restricted.PUT("/bookings/:id/cancel", booking.Cancel)
	restricted.PUT("/bookings/:id/approve", booking.Approve)
	restricted.PUT("/bookings/:id/reject", booking.Reject)

	//
	// book handlers
	//
	book := &book{
		db: ctrl.Database,
	}
	restricted.GET("/books", book.List)
	restricted.GET("/books/my", book.Mine)
	restricted.POST("/books", book.Create)
	restricted.DELETE("/books/:id", book.Delete)
	restricted.POST("/books/:id/request", book.Request)
	restricted.PUT("/books/:id/return", book.Return)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
