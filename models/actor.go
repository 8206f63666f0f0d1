package models

// Actor is the identity a request acts as. It is built by the HTTP layer from
// the authenticated user and passed explicitly into every service call.
type Actor struct {
	UserID   uint
	Username string
	IsWriter bool
	IsAdmin  bool
}

func ActorFromUser(u *User) Actor {
	return Actor{
		UserID:   u.ID,
		Username: u.Username,
		IsWriter: u.IsWriter,
		IsAdmin:  u.IsAdmin,
	}
}
