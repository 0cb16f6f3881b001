package main

import (
	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, pwd string, rol user.Role) error {
	uname = core.CleanString(uname, true /* lower */)

	usr, err := cli.svc.GetByUsername(uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{Username: uname}
	}
	usr.Rol = rol
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	return cli.svc.Save(usr)
}
