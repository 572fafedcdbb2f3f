package cli

func (a *App) handlers() map[string]handler {
	return map[string]handler{
		"register":      a.Register,
		"login":         a.Login,
		"logout":        a.Logout,
		"whoami":        a.WhoAmI,
		"passwd":        a.ChangePassword,
		"email":         a.ChangeEmail,
		"deleteaccount": a.DeleteAccount,

		"categories":   a.Categories,
		"addcategory":  a.AddCategory,
		"editcategory": a.EditCategory,
		"rmcategory":   a.RemoveCategory,

		"list":         a.List,
		"appointments": a.Appointments,
		"show":         a.Show,
		"add":          a.Add,
		"edit":         a.Edit,
		"done":         a.Done,
		"reopen":       a.Reopen,
		"rm":           a.Remove,

		"docs":   a.Docs,
		"attach": a.Attach,
		"open":   a.Open,
		"rmdoc":  a.RemoveDocument,

		"overview": a.Overview,
		"settings": a.Settings,
		"dismiss":  a.Dismiss,
	}
}
