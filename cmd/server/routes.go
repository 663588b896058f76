package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minevest.backend/internal/interfaces/http/handlers"
	"minevest.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	operationHandler    *handlers.OperationHandler
	investmentHandler   *handlers.InvestmentHandler
	walletHandler       *handlers.WalletHandler
	kycHandler          *handlers.KycHandler
	notificationHandler *handlers.NotificationHandler
	adminHandler        *handlers.AdminHandler
	userAuth            gin.HandlerFunc
	adminAuth           gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/verify-email", d.userAuth, d.authHandler.VerifyEmail)
			auth.POST("/change-password", d.userAuth, d.authHandler.ChangePassword)
			auth.GET("/me", d.userAuth, d.authHandler.Me)
		}

		// Mining operation catalogue (public read)
		operations := v1.Group("/operations")
		{
			operations.GET("", d.operationHandler.List)
			operations.GET("/:id", d.operationHandler.Get)
		}

		// Investment routes (protected)
		investments := v1.Group("/investments")
		investments.Use(d.userAuth)
		{
			investments.POST("", middleware.IdempotencyMiddleware(), d.investmentHandler.Create)
			investments.GET("", d.investmentHandler.List)
			investments.GET("/:id", d.investmentHandler.Get)
			investments.POST("/:id/withdraw", d.investmentHandler.Withdraw)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.userAuth)
		{
			wallet.POST("/deposit", middleware.IdempotencyMiddleware(), d.walletHandler.Deposit)
			wallet.POST("/withdraw", middleware.IdempotencyMiddleware(), d.walletHandler.Withdraw)
			wallet.GET("/transactions", d.walletHandler.Transactions)
		}

		// KYC routes (protected)
		kyc := v1.Group("/kyc")
		kyc.Use(d.userAuth)
		{
			kyc.POST("/documents", d.kycHandler.Submit)
			kyc.GET("/documents", d.kycHandler.Status)
		}

		// Notification routes (protected)
		notifications := v1.Group("/notifications")
		notifications.Use(d.userAuth)
		{
			notifications.GET("", d.notificationHandler.List)
			notifications.POST("/:id/read", d.notificationHandler.MarkRead)
			notifications.POST("/read-all", d.notificationHandler.MarkAllRead)
		}

		// Admin back office (admin-audience tokens + admin role)
		v1.POST("/admin/login", d.authHandler.AdminLogin)

		admin := v1.Group("/admin")
		admin.Use(d.adminAuth, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.PATCH("/users/:id", d.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)

			admin.GET("/operations", d.adminHandler.ListOperations)
			admin.POST("/operations", d.adminHandler.CreateOperation)
			admin.PATCH("/operations/:id", d.adminHandler.UpdateOperation)
			admin.DELETE("/operations/:id", d.adminHandler.DeleteOperation)

			admin.GET("/kyc/pending", d.adminHandler.ListPendingDocuments)
			admin.POST("/kyc/:id/review", d.adminHandler.ReviewDocument)

			admin.GET("/audit-logs", d.adminHandler.ListAuditLogs)
		}
	}
}
