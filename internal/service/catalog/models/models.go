package models

import (
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// MenuResponse позиция меню
type MenuResponse struct {
	ID              string
	Name            string
	Description     *string
	Price           int
	DurationMinutes int
	Image           *string
	Category        string
}

// MenuGroup меню одной категории
type MenuGroup struct {
	Category string
	Label    string
	Menus    []MenuResponse
}

// CatalogResponse каталог, сгруппированный по категориям
type CatalogResponse struct {
	Groups []MenuGroup
}

// StaffResponse мастер
type StaffResponse struct {
	ID   string
	Name string
}

// StaffListResponse список активных мастеров
type StaffListResponse struct {
	Staffs []StaffResponse
}

// FromDomainMenu конвертирует доменную модель меню в ответ
func FromDomainMenu(m domain.Menu) MenuResponse {
	return MenuResponse{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		Image:           m.Image,
		Category:        string(m.Category),
	}
}

// FromDomainStaffList конвертирует список мастеров
func FromDomainStaffList(list []domain.Staff) *StaffListResponse {
	result := &StaffListResponse{Staffs: make([]StaffResponse, 0, len(list))}
	for _, s := range list {
		result.Staffs = append(result.Staffs, StaffResponse{ID: s.ID, Name: s.Name})
	}
	return result
}
