package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/models"
)

// MinTailorSchools is how many schools a tailor must serve to register.
const MinTailorSchools = 3

// portal describes one sign-in screen.
type portal struct {
	Role      string // role hint passed to the session; "" for the general login
	Title     string
	LoginPath string
	Register  string
}

var (
	customerPortal = portal{Title: "Login", LoginPath: "/login", Register: "/register"}
	tailorPortal   = portal{Role: models.RoleTailor, Title: "Tailor Login", LoginPath: "/tailor-login", Register: "/tailor-register"}
	deliveryPortal = portal{Role: models.RoleDelivery, Title: "Delivery Partner Login", LoginPath: "/delivery-login", Register: "/delivery-register"}
)

func portalFor(role string) portal {
	switch role {
	case models.RoleTailor:
		return tailorPortal
	case models.RoleDelivery:
		return deliveryPortal
	default:
		return customerPortal
	}
}

// homeFor is where a freshly signed-in user lands.
func homeFor(role string) string {
	switch role {
	case models.RoleTailor:
		return "/tailor/dashboard"
	case models.RoleDelivery:
		return "/delivery/dashboard"
	case models.RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginPage renders the sign-in screen for role ("" for customers/staff).
func (h *Handlers) LoginPage(role string) gin.HandlerFunc {
	p := portalFor(role)
	return func(c *gin.Context) {
		v := currentVisitor(c)
		if id := v.Session.Current(); id != nil && (p.Role == "" || id.Role == p.Role) {
			c.Redirect(http.StatusSeeOther, homeFor(id.Role))
			return
		}

		data := gin.H{"Title": p.Title, "Portal": p}
		if c.Query("verified") != "" {
			data["Notice"] = "Email verified successfully! Your account is pending admin approval."
		}
		h.render(c, http.StatusOK, "login", data)
	}
}

// Login signs the visitor in through the screen for role.
func (h *Handlers) Login(role string) gin.HandlerFunc {
	p := portalFor(role)
	return func(c *gin.Context) {
		v := currentVisitor(c)
		data := gin.H{"Title": p.Title, "Portal": p}

		var input loginForm
		if err := c.ShouldBind(&input); err != nil {
			data["Error"] = "Please enter your username and password."
			h.render(c, http.StatusBadRequest, "login", data)
			return
		}
		data["Username"] = input.Username

		identity, err := v.Session.Login(c.Request.Context(), models.Credentials{
			Username: input.Username,
			Password: input.Password,
		}, p.Role)
		if err != nil {
			// A 401 here means bad credentials, not an expired session.
			h.renderLoginError(c, data, err)
			return
		}

		// The backend session cookie may now belong to a different cart.
		if _, err := v.Cart.Refresh(c.Request.Context()); err != nil {
			h.failPage(c, http.StatusOK, "login", data, err, "Signed in, but the cart could not be loaded.")
			return
		}
		signedInAs := p.Role
		if identity != nil {
			signedInAs = identity.Role
		}
		c.Redirect(http.StatusSeeOther, homeFor(signedInAs))
	}
}

func (h *Handlers) renderLoginError(c *gin.Context, data gin.H, err error) {
	log.Printf("login: %v", err)
	data["Error"] = api.Message(err, "Login failed. Please try again.")
	h.render(c, http.StatusOK, "login", data)
}

// Logout forgets the token and the identity.
func (h *Handlers) Logout(c *gin.Context) {
	v := currentVisitor(c)
	if err := v.Session.Logout(); err != nil {
		h.failPage(c, http.StatusOK, "error", gin.H{"Title": "Logout"}, err, "Could not sign out.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type registerForm struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
}

// RegisterPage renders customer sign-up.
func (h *Handlers) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register", gin.H{"Title": "Create Account"})
}

// Register creates a customer account and signs it in.
func (h *Handlers) Register(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Create Account"}

	var input registerForm
	if err := c.ShouldBind(&input); err != nil {
		data["Form"] = input
		data["Error"] = "Please fill in a username, a valid email and a password of at least 8 characters."
		h.render(c, http.StatusBadRequest, "register", data)
		return
	}
	data["Form"] = input
	if input.Password != input.ConfirmPassword {
		data["Error"] = "Passwords do not match"
		h.render(c, http.StatusBadRequest, "register", data)
		return
	}

	_, err := v.API.Register(c.Request.Context(), models.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		h.failPage(c, http.StatusOK, "register", data, err, "Registration failed")
		return
	}

	if _, err := v.Session.Login(c.Request.Context(), models.Credentials{Username: input.Username, Password: input.Password}, ""); err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// partnerForm is the tailor and delivery-partner sign-up form.
type partnerForm struct {
	Username        string  `form:"username"`
	Email           string  `form:"email" binding:"required,email"`
	Password        string  `form:"password" binding:"required,min=8"`
	ConfirmPassword string  `form:"confirm_password" binding:"required"`
	FirstName       string  `form:"first_name" binding:"required"`
	LastName        string  `form:"last_name" binding:"required"`
	IDNumber        string  `form:"id_number" binding:"required"`
	Nationality     string  `form:"nationality" binding:"required"`
	PhysicalAddress string  `form:"physical_address" binding:"required"`
	Town            string  `form:"town" binding:"required"`
	Province        string  `form:"province" binding:"required"`
	PaymentDetails  string  `form:"payment_details" binding:"required"`
	Phone           string  `form:"phone" binding:"required"`
	BusinessName    string  `form:"business_name"`
	Schools         []int64 `form:"schools"`
	VehicleType     string  `form:"vehicle_type"`
	LicensePlate    string  `form:"license_plate"`
}

func (f partnerForm) registration() models.PartnerRegistration {
	return models.PartnerRegistration{
		Username:        f.Username,
		Email:           f.Email,
		Password:        f.Password,
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		IDNumber:        f.IDNumber,
		Nationality:     f.Nationality,
		PhysicalAddress: f.PhysicalAddress,
		Town:            f.Town,
		Province:        f.Province,
		PaymentDetails:  f.PaymentDetails,
		Phone:           f.Phone,
		BusinessName:    f.BusinessName,
		Schools:         f.Schools,
		VehicleType:     f.VehicleType,
		LicensePlate:    f.LicensePlate,
	}
}

// partnerPageData loads what the partner sign-up page needs. Tailors pick
// the schools they serve.
func (h *Handlers) partnerPageData(c *gin.Context, p portal) gin.H {
	data := gin.H{
		"Title":      strings.Replace(p.Title, "Login", "Registration", 1),
		"Portal":     p,
		"MinSchools": MinTailorSchools,
		"Form":       partnerForm{},
	}
	if p.Role != models.RoleTailor {
		return data
	}
	schools, err := currentVisitor(c).API.ListSchools(c.Request.Context())
	if err != nil {
		data["SchoolsError"] = api.Message(err, "Could not load schools.")
		return data
	}
	data["Schools"] = schools
	return data
}

// PartnerRegisterPage renders tailor or delivery-partner sign-up.
func (h *Handlers) PartnerRegisterPage(role string) gin.HandlerFunc {
	p := portalFor(role)
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, "partner_register", h.partnerPageData(c, p))
	}
}

// PartnerRegister submits a tailor or delivery-partner application and moves
// on to email verification.
func (h *Handlers) PartnerRegister(role string) gin.HandlerFunc {
	p := portalFor(role)
	return func(c *gin.Context) {
		v := currentVisitor(c)

		// 1. --- Bind and validate ---
		var input partnerForm
		bindErr := c.ShouldBind(&input)
		problem := ""
		switch {
		case bindErr != nil:
			problem = "Please complete every required field with a valid email and a password of at least 8 characters."
		case input.Password != input.ConfirmPassword:
			problem = "Passwords do not match"
		case role == models.RoleTailor && len(input.Schools) < MinTailorSchools:
			problem = "Please select at least 3 schools."
		case role == models.RoleDelivery && input.VehicleType == "":
			problem = "Please enter your vehicle type."
		}
		if problem != "" {
			data := h.partnerPageData(c, p)
			data["Form"] = input
			data["Error"] = problem
			h.render(c, http.StatusBadRequest, "partner_register", data)
			return
		}

		// 2. --- Submit ---
		var err error
		if role == models.RoleTailor {
			_, err = v.API.RegisterTailor(c.Request.Context(), input.registration())
		} else {
			_, err = v.API.RegisterDelivery(c.Request.Context(), input.registration())
		}
		if err != nil {
			data := h.partnerPageData(c, p)
			data["Form"] = input
			h.failPage(c, http.StatusOK, "partner_register", data, err, "Registration failed")
			return
		}

		// 3. --- Verify email ---
		q := url.Values{"type": {role}, "email": {input.Email}, "sent": {"1"}}
		c.Redirect(http.StatusSeeOther, "/verify-email?"+q.Encode())
	}
}

type verifyForm struct {
	Email    string `form:"email" binding:"required,email"`
	Code     string `form:"verification_code" binding:"required"`
	UserType string `form:"user_type" binding:"required,oneof=tailor delivery"`
}

type resendForm struct {
	Email    string `form:"email" binding:"required,email"`
	UserType string `form:"user_type" binding:"required,oneof=tailor delivery"`
}

// VerifyEmailPage renders the verification code form.
func (h *Handlers) VerifyEmailPage(c *gin.Context) {
	data := gin.H{
		"Title":    "Verify Email",
		"Email":    c.Query("email"),
		"UserType": c.Query("type"),
	}
	if c.Query("sent") != "" {
		data["Notice"] = "Registration successful! Please check your email for verification code."
	}
	h.render(c, http.StatusOK, "verify_email", data)
}

// VerifyEmail submits the emailed code.
func (h *Handlers) VerifyEmail(c *gin.Context) {
	v := currentVisitor(c)
	var input verifyForm
	bindErr := c.ShouldBind(&input)
	data := gin.H{"Title": "Verify Email", "Email": input.Email, "UserType": input.UserType}
	if bindErr != nil {
		data["Error"] = "Please enter your email and the verification code."
		h.render(c, http.StatusBadRequest, "verify_email", data)
		return
	}

	_, err := v.API.VerifyEmail(c.Request.Context(), models.VerifyEmailInput{
		Email:            input.Email,
		VerificationCode: strings.TrimSpace(input.Code),
		UserType:         input.UserType,
	})
	if err != nil {
		h.failPage(c, http.StatusOK, "verify_email", data, err, "Verification failed")
		return
	}
	c.Redirect(http.StatusSeeOther, portalFor(input.UserType).LoginPath+"?verified=1")
}

// ResendVerification asks for a new code.
func (h *Handlers) ResendVerification(c *gin.Context) {
	v := currentVisitor(c)
	var input resendForm
	bindErr := c.ShouldBind(&input)
	data := gin.H{"Title": "Verify Email", "Email": input.Email, "UserType": input.UserType}
	if bindErr != nil {
		data["Error"] = "Please enter the email you registered with."
		h.render(c, http.StatusBadRequest, "verify_email", data)
		return
	}

	_, err := v.API.ResendVerification(c.Request.Context(), models.ResendVerificationInput{
		Email:    input.Email,
		UserType: input.UserType,
	})
	if err != nil {
		h.failPage(c, http.StatusOK, "verify_email", data, err, "Failed to resend verification code")
		return
	}
	data["Notice"] = "Verification code sent! Please check your email."
	h.render(c, http.StatusOK, "verify_email", data)
}
