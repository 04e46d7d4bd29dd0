package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position"`
	JoinDate   string `json:"join_date" binding:"required"`
}

type UpdateStatusRequest struct {
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Department       string `json:"department"`
	Position         string `json:"position,omitempty"`
	EmploymentStatus string `json:"employment_status"`
	JoinDate         string `json:"join_date"`
}

// EmployeeOption is the slim shape cached for dropdowns.
type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Department     string `json:"department"`
}
