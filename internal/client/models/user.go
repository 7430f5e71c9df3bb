package models

import "strings"

// User is the current-user record. Every field carries its own presence
// flag; a freshly constructed or reset User has no fields set.
type User struct {
	ID           Opt[string]
	Username     Opt[string]
	UsernameLow  Opt[string]
	Email        Opt[string]
	Firstname    Opt[string]
	Lastname     Opt[string]
	Avatar       Opt[string]
	EmailPublic  Opt[bool]
	EmailChecked Opt[bool]
}

// UserUpdate is a partial user as reported by the server. Absent fields
// leave the corresponding User field untouched when applied.
type UserUpdate struct {
	ID           Opt[string]
	Username     Opt[string]
	Email        Opt[string]
	Firstname    Opt[string]
	Lastname     Opt[string]
	Avatar       Opt[string]
	EmailPublic  Opt[bool]
	EmailChecked Opt[bool]
}

// Apply merges the present fields of up into u. UsernameLow follows
// Username whenever the update carries one.
func (u *User) Apply(up UserUpdate) {
	u.ID.apply(up.ID)
	u.Username.apply(up.Username)
	if up.Username.Set {
		u.UsernameLow = Some(strings.ToLower(up.Username.Value))
	}
	u.Email.apply(up.Email)
	u.Firstname.apply(up.Firstname)
	u.Lastname.apply(up.Lastname)
	u.Avatar.apply(up.Avatar)
	u.EmailPublic.apply(up.EmailPublic)
	u.EmailChecked.apply(up.EmailChecked)
}

// Reset unsets every field.
func (u *User) Reset() {
	*u = User{}
}

// Fields returns the wire names of the fields currently set, in
// declaration order.
func (u User) Fields() []string {
	fields := make([]string, 0, 9)
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(u.ID.Set, "id")
	add(u.Username.Set, "username")
	add(u.UsernameLow.Set, "usernameLow")
	add(u.Email.Set, "email")
	add(u.Firstname.Set, "firstname")
	add(u.Lastname.Set, "lastname")
	add(u.Avatar.Set, "avatar")
	add(u.EmailPublic.Set, "emailpublic")
	add(u.EmailChecked.Set, "emailchecked")
	return fields
}

// IsEmpty reports whether no field is set.
func (u User) IsEmpty() bool {
	return len(u.Fields()) == 0
}
