package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Accounts created",
	})
	mLoginOK = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Successful logins",
	})
	mLoginFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_login_failures_total",
		Help: "Rejected logins (unknown email, bad password, inactive account)",
	})
	mVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_emails_verified_total",
		Help: "Email addresses verified",
	})
	mPasswordReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_password_resets_total",
		Help: "Passwords reset via single-use token",
	})
	mEmailFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_email_send_failures_total",
		Help: "Account emails that could not be delivered",
	})
)
