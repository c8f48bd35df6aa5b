package model

import "time"

// Employee represents a row of the `employees` table. The employee
// code (EMP001, ...) is the login identifier; batch places the
// employee in one of the two rotation cohorts. Admins carry batch 0
// and are outside the rotation.
//
// Fields:
//  ID           – primary key identifier.
//  EmployeeCode – unique login code.
//  Name         – display name.
//  PasswordHash – bcrypt hashed password.
//  Batch        – rotation cohort (1 or 2; 0 for admins).
//  Role         – EMPLOYEE or ADMIN.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
type Employee struct {
	ID           uint64    // employees.id
	EmployeeCode string    // employees.employee_code
	Name         string    // employees.name
	PasswordHash string    // employees.password_hash
	Batch        int       // employees.batch
	Role         string    // employees.role
	IsActive     bool      // employees.is_active
	CreatedAt    time.Time // employees.created_at
}
