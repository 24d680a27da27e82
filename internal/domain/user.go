package domain

// Subscription is the account's plan tier.
type Subscription string

const (
	SubscriptionStarter  Subscription = "starter"
	SubscriptionPro      Subscription = "pro"
	SubscriptionBusiness Subscription = "business"
)

func IsValidSubscription(s string) bool {
	switch Subscription(s) {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// User is an account record.
//
// SessionToken holds the single currently-valid session token (single-session
// model): set on login, cleared on logout, overwritten by a later login.
// VerificationToken is present only while the account is unverified;
// Verified == true implies VerificationToken == "".
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Subscription      Subscription
	AvatarURL         string
	SessionToken      string
	Verified          bool
	VerificationToken string
}
