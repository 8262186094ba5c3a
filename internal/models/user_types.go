package models

// Roles a signed-in user can act as.
const (
	RoleCustomer = "customer"
	RoleTailor   = "tailor"
	RoleDelivery = "delivery"
	RoleAdmin    = "admin"
)

// User is the identity returned by GET /auth/profile/.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
	Role      string `json:"role,omitempty"`
}

func (u *User) RefID() int64 { return u.ID }

// DisplayName is the first name when known, else the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Credentials is the body of POST /token/.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the answer of POST /token/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterInput is the body of POST /auth/register/.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterResponse is the answer of POST /auth/register/.
type RegisterResponse struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// PartnerRegistration is shared by the tailor and delivery-partner sign-up
// endpoints. Schools is tailor-only; the vehicle fields are delivery-only.
type PartnerRegistration struct {
	Username        string  `json:"username,omitempty"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	IDNumber        string  `json:"id_number"`
	Nationality     string  `json:"nationality"`
	PhysicalAddress string  `json:"physical_address"`
	Town            string  `json:"town"`
	Province        string  `json:"province"`
	PaymentDetails  string  `json:"payment_details"`
	Phone           string  `json:"phone"`
	BusinessName    string  `json:"business_name,omitempty"`
	Schools         []int64 `json:"schools,omitempty"`
	VehicleType     string  `json:"vehicle_type,omitempty"`
	LicensePlate    string  `json:"license_plate,omitempty"`
}

// RegistrationResponse is the answer of the partner sign-up endpoints.
type RegistrationResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// VerifyEmailInput is the body of POST /auth/verify-email/.
type VerifyEmailInput struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
	UserType         string `json:"user_type"`
}

// ResendVerificationInput is the body of POST /auth/resend-verification/.
type ResendVerificationInput struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}
