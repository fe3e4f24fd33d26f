package http

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

// validatePassword enforces the registration policy: at least 8
// characters with an uppercase, a lowercase, and a punctuation mark.
func validatePassword(pw string) string {
	if len(pw) < 8 {
		return "Password must be at least 8 characters long."
	}
	var upper, lower, punct bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			punct = true
		}
	}
	switch {
	case !upper:
		return "Password must contain an uppercase letter."
	case !lower:
		return "Password must contain a lowercase letter."
	case !punct:
		return "Password must contain a punctuation character."
	}
	return ""
}

func (s *Server) showRegister(c *gin.Context) {
	c.HTML(200, "register.html", gin.H{"Flash": takeFlash(c)})
}

func (s *Server) register(c *gin.Context) {
	fullName := strings.TrimSpace(c.PostForm("full_name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	renderErr := func(msg string) {
		c.HTML(200, "register.html", gin.H{
			"Flash":    &Flash{Category: "danger", Message: msg},
			"FullName": fullName,
			"Email":    email,
		})
	}

	if fullName == "" || email == "" || password == "" {
		renderErr("All fields are required.")
		return
	}
	if !strings.Contains(email, "@") {
		renderErr("Please enter a valid email address.")
		return
	}
	if password != confirm {
		renderErr("Passwords do not match.")
		return
	}
	if msg := validatePassword(password); msg != "" {
		renderErr(msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderErr("Registration failed, please try again.")
		return
	}

	user := &models.User{FullName: fullName, Email: email, PasswordHash: string(hash)}
	if err := s.store.CreateUser(user); err != nil {
		if store.IsValidation(err) {
			renderErr(err.Error())
		} else {
			s.logErr(c, err)
			renderErr("Registration failed, please try again.")
		}
		return
	}

	token, err := issueSession(s.cfg, user)
	if err != nil {
		setFlash(c, "success", "Account created, please log in.")
		c.Redirect(302, "/login")
		return
	}
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	setFlash(c, "success", "Welcome to Budget Buddy! Let's set up your first account.")
	c.Redirect(302, "/setup")
}

func (s *Server) showLogin(c *gin.Context) {
	c.HTML(200, "login.html", gin.H{"Flash": takeFlash(c)})
}

func (s *Server) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	renderErr := func(msg string) {
		c.HTML(200, "login.html", gin.H{
			"Flash": &Flash{Category: "danger", Message: msg},
			"Email": email,
		})
	}

	user, err := s.store.UserByEmail(email)
	if err != nil {
		renderErr("Invalid email or password.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		renderErr("Invalid email or password.")
		return
	}

	token, err := issueSession(s.cfg, user)
	if err != nil {
		s.logErr(c, err)
		renderErr("Login failed, please try again.")
		return
	}
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(302, "/dashboard")
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	setFlash(c, "info", "You have been logged out.")
	c.Redirect(302, "/login")
}
