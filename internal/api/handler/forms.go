package handler

// Column limits mirror the persisted schema.
type credentialsForm struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required"`
}

type todoForm struct {
	Content  string `form:"content"  validate:"max=200"`
	DueDate  string `form:"due_date"`
	Priority string `form:"priority" validate:"max=10"`
	Category string `form:"category" validate:"max=50"`
}

type listQuery struct {
	Q string `query:"q"`
}
