package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

const minPasswordLen = 6

// UserUseCase aplica reglas de negocio para usuarios. Solo lo invocan administradores.
type UserUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
// bcryptCost 0 usa el costo por defecto.
func NewUserUseCase(repo repository.UserRepository, bcryptCost int) *UserUseCase {
	return &UserUseCase{repo: repo, bcryptCost: bcryptCost}
}

// Create crea un usuario: valida, hashea el password y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := auth.NormalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, invalid("email inválido")
	}
	if err := requireText("name", in.Name, 200); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid("password debe tener al menos %d caracteres", minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	if !entity.ValidRole(role) {
		return nil, invalid("rol desconocido %q", role)
	}
	caps, err := entity.ParseCapabilities(in.Permissions)
	if err != nil {
		return nil, invalid("%v", err)
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	user := &entity.User{
		Email:        email,
		Name:         in.Name,
		Role:         role,
		Permissions:  caps,
		PasswordHash: hash,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// Update aplica los campos presentes. Un password nuevo se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, invalid("email inválido")
		}
		user.Email = email
	}
	if in.Name != nil {
		if err := requireText("name", *in.Name, 200); err != nil {
			return nil, err
		}
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, invalid("rol desconocido %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Permissions != nil {
		caps, err := entity.ParseCapabilities(*in.Permissions)
		if err != nil {
			return nil, invalid("%v", err)
		}
		user.Permissions = caps
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, invalid("password debe tener al menos %d caracteres", minPasswordLen)
		}
		hash, err := auth.HashPassword(*in.Password, uc.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// List lista usuarios con paginación skip/limit.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: page.Skip, Limit: page.Limit, Count: len(items)},
	}, nil
}

// Delete elimina un usuario. Un administrador no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if actor != nil && actor.ID == id {
		return invalid("no se puede eliminar el usuario con el que se ha iniciado sesión")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
