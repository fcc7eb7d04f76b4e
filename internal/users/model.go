package users

type Role string

const (
	RoleAgricultor Role = "agricultor"
	RoleConsumidor Role = "consumidor"
)

// User is one account record. The farmer-only fields are zero-valued for
// consumers and omitted when marshalled.
type User struct {
	ID          int    `json:"id" yaml:"id"`
	Username    string `json:"username" yaml:"username"`
	Email       string `json:"email" yaml:"email"`
	Password    string `json:"password" yaml:"password"`
	Role        Role   `json:"role" yaml:"role"`
	State       string `json:"state" yaml:"state"`
	City        string `json:"city" yaml:"city"`
	PhoneNumber string `json:"phoneNumber" yaml:"phoneNumber"`
	MemberSince string `json:"memberSince" yaml:"memberSince"`

	PropertyName string  `json:"propertyName,omitempty" yaml:"propertyName"`
	FarmerStory  string  `json:"farmerStory,omitempty" yaml:"farmerStory"`
	ProfileImage string  `json:"profileImage,omitempty" yaml:"profileImage"`
	Rating       float64 `json:"rating,omitempty" yaml:"rating"`
	TotalSales   int     `json:"totalSales,omitempty" yaml:"totalSales"`
}

// Updates carries a partial user mutation. Nil fields are left untouched.
type Updates struct {
	Username     *string
	Email        *string
	Password     *string
	State        *string
	City         *string
	PhoneNumber  *string
	PropertyName *string
	FarmerStory  *string
	ProfileImage *string
	Rating       *float64
	TotalSales   *int
}
