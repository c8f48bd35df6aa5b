package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/utils"
)

// EmployeeRepo provides data access to the employees table.
type EmployeeRepo struct{ DB *sql.DB }

// NewEmployeeRepo returns a new EmployeeRepo bound to the given database.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

// Create inserts an employee and returns its ID. The employee code
// is normalized to upper case before insertion.
func (r *EmployeeRepo) Create(ctx context.Context, code, name, password string, batch int, role string, cost int) (uint64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (employee_code, name, password_hash, batch, role) VALUES (?,?,?,?,?)",
		code, name, hash, batch, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmployeeCodeExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByCode fetches an employee by normalized employee code.
func (r *EmployeeRepo) GetByCode(ctx context.Context, code string) (model.Employee, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return r.get(ctx, "employee_code = ?", code)
}

// GetByID fetches an employee by id.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *EmployeeRepo) get(ctx context.Context, where string, arg any) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, employee_code, name, password_hash, batch, role, is_active, created_at FROM employees WHERE "+where+" LIMIT 1",
		arg).Scan(&e.ID, &e.EmployeeCode, &e.Name, &e.PasswordHash, &e.Batch, &e.Role, &e.IsActive, &e.CreatedAt)
	return e, err
}
