package app

import "github.com/sirupsen/logrus"

const defaultUserName = "default"

// User is the component the EnableUser import contributes. Its presence
// gates the hello controller.
type User struct {
	Name string
}

// EnableUser registers the User component under ComponentUser and logs the
// import attributes it was selected with.
func EnableUser(reg *Registry, name string, log logrus.FieldLogger) *User {
	if name == "" {
		name = defaultUserName
	}
	log.WithFields(logrus.Fields{
		"component":  "user_import",
		"attributes": map[string][]string{"name": {name}},
	}).Info("user_import_selected")

	reg.Register(ComponentUser)
	return &User{Name: name}
}
