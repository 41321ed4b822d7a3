package api

import (
	"context"
	"net/http"
	"time"

	"github.com/RichardKnop/machinery/v1"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpmap/helpmap-api/logmodule"
	"github.com/helpmap/helpmap-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.MongoStore

	// job pool enqueuer
	background *machinery.Server
}

// NewServer new instance of server
func NewServer(mongoClient *mongo.Client, background *machinery.Server) *Server {
	return &Server{
		store:      store.NewMongoStore(mongoClient, viper.GetString("mongo.database")),
		background: background,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	authRoute := r.Group("/auth")
	authRoute.Use(logmodule.Ginrus("Auth"))
	{
		authRoute.POST("/register", s.register)
		authRoute.POST("/login", s.login)
		authRoute.POST("/refresh", s.refreshToken)
		authRoute.GET("/me", s.authMiddleware(), s.authMe)
		authRoute.POST("/logout", s.authMiddleware(), s.logout)
	}

	userRoute := r.Group("/users")
	userRoute.Use(logmodule.Ginrus("API"))
	{
		userRoute.GET("/:userID", s.getUser)
		userRoute.GET("/:userID/public-key", s.getUserPublicKey)
		userRoute.PUT("/me", s.authMiddleware(), s.updateProfile)
		userRoute.PUT("/me/public-key", s.authMiddleware(), s.setUserPublicKey)
	}

	requestRoute := r.Group("/requests")
	requestRoute.Use(logmodule.Ginrus("API"))
	{
		requestRoute.GET("", s.listRequests)
		requestRoute.GET("/:requestID", s.getRequest)

		requestRoute.POST("", s.authMiddleware(), s.createRequest)
		requestRoute.PUT("/:requestID", s.authMiddleware(), s.updateRequest)
		requestRoute.POST("/:requestID/confirm", s.authMiddleware(), s.confirmRequestHelper)
		requestRoute.POST("/:requestID/complete", s.authMiddleware(), s.completeRequest)
	}

	chatRoute := r.Group("/chats")
	chatRoute.Use(logmodule.Ginrus("API"))
	chatRoute.Use(s.authMiddleware())
	{
		chatRoute.POST("", s.initChat)
		chatRoute.POST("/offers/confirm", s.confirmOffer)
		chatRoute.GET("/:chatID", s.getChat)
		chatRoute.POST("/:chatID/messages", s.sendMessage)
		chatRoute.GET("/:chatID/messages", s.listMessages)
		chatRoute.POST("/:chatID/offer", s.createOffer)
	}

	r.GET("/healthz", s.healthz)
	r.GET("/information", s.information)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "HelpMap 0.1",
			"docs":           viper.GetStringMap("docs"),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	c.JSON(code, obj)
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}

// abortWithStoreError maps a store error to its client-facing category:
// 404 for unresolved ids, 403 for authorization failures, 409 for
// lifecycle-state violations, 400 for balance and input problems.
func abortWithStoreError(c *gin.Context, err error) {
	switch err {
	case store.ErrUserNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorUserNotFound, err)
	case store.ErrNoPublicKey:
		abortWithEncoding(c, http.StatusNotFound, errorNoPublicKey, err)
	case store.ErrRequestNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound, err)
	case store.ErrChatNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorChatNotFound, err)
	case store.ErrOfferNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorOfferNotFound, err)
	case store.ErrNotRequestAuthor:
		abortWithEncoding(c, http.StatusForbidden, errorNotRequestAuthor, err)
	case store.ErrNotRequestMember:
		abortWithEncoding(c, http.StatusForbidden, errorNotRequestMember, err)
	case store.ErrNotChatParticipant:
		abortWithEncoding(c, http.StatusForbidden, errorNotChatParticipant, err)
	case store.ErrRequestNotOpen:
		abortWithEncoding(c, http.StatusConflict, errorRequestNotOpen, err)
	case store.ErrRequestNotInProgress:
		abortWithEncoding(c, http.StatusConflict, errorRequestNotInProgress, err)
	case store.ErrNoHelperAssigned:
		abortWithEncoding(c, http.StatusConflict, errorNoHelperAssigned, err)
	case store.ErrOfferNotPending:
		abortWithEncoding(c, http.StatusConflict, errorOfferNotPending, err)
	case store.ErrChatNotLinked:
		abortWithEncoding(c, http.StatusConflict, errorChatNotLinked, err)
	case store.ErrInsufficientPoints:
		abortWithEncoding(c, http.StatusBadRequest, errorInsufficientPoints, err)
	case store.ErrEmailTaken:
		abortWithEncoding(c, http.StatusBadRequest, errorEmailTaken, err)
	case store.ErrTooFewParticipants:
		abortWithEncoding(c, http.StatusBadRequest, errorTooFewParticipants, err)
	default:
		log.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	}
}
