package main

func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.svc.GetByUsername(uname)
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	return cli.svc.Save(usr)
}
