package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/internal/service/catalog/models"
)

// Service сервис каталога: меню по категориям и список мастеров
type Service struct {
	menuRepo  MenuRepository
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(menuRepo MenuRepository, staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		menuRepo:  menuRepo,
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// GetMenus возвращает меню, сгруппированное по категориям в фиксированном порядке.
// Все группы из domain.CategoryOrder присутствуют, даже пустые.
// Меню без распознанной категории попадают в последнюю группу other, если такие есть.
func (s *Service) GetMenus(ctx context.Context) (*models.CatalogResponse, error) {
	menus, err := s.menuRepo.ListMenus(ctx)
	if err != nil {
		s.logger.Error("GetMenus: failed to list menus: %v", err)
		return nil, fmt.Errorf("%w: GetMenus - repository error: %v", ErrInternal, err)
	}

	groups := GroupMenus(menus)

	s.logger.Info("GetMenus: %d menus in %d groups", len(menus), len(groups))
	return &models.CatalogResponse{Groups: groups}, nil
}

// ListStaff возвращает активных мастеров
func (s *Service) ListStaff(ctx context.Context) (*models.StaffListResponse, error) {
	staffs, err := s.staffRepo.ListActiveStaff(ctx)
	if err != nil {
		s.logger.Error("ListStaff: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStaff: %d active staff", len(staffs))
	return models.FromDomainStaffList(staffs), nil
}

// GroupMenus раскладывает меню по категориям
func GroupMenus(menus []domain.Menu) []models.MenuGroup {
	byCategory := make(map[domain.Category][]domain.Menu)
	for _, m := range menus {
		category := domain.NormalizeCategory(string(m.Category))
		m.Category = category
		byCategory[category] = append(byCategory[category], m)
	}

	groups := make([]models.MenuGroup, 0, len(domain.CategoryOrder)+1)
	for _, category := range domain.CategoryOrder {
		items := byCategory[category]
		if category.DedupByNamePrice() {
			items = dedupByNamePrice(items)
		}
		if category == domain.CategoryCut {
			items = orderCutMenus(items)
		}
		groups = append(groups, newGroup(category, items))
	}

	if other := byCategory[domain.CategoryOther]; len(other) > 0 {
		groups = append(groups, newGroup(domain.CategoryOther, other))
	}

	return groups
}

func newGroup(category domain.Category, items []domain.Menu) models.MenuGroup {
	group := models.MenuGroup{
		Category: string(category),
		Label:    category.Label(),
		Menus:    make([]models.MenuResponse, 0, len(items)),
	}
	for _, m := range items {
		group.Menus = append(group.Menus, models.FromDomainMenu(m))
	}
	return group
}

// dedupByNamePrice оставляет первое меню для каждой пары название+цена
func dedupByNamePrice(items []domain.Menu) []domain.Menu {
	type key struct {
		name  string
		price int
	}

	seen := make(map[key]struct{}, len(items))
	result := make([]domain.Menu, 0, len(items))
	for _, m := range items {
		k := key{name: m.Name, price: m.Price}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, m)
	}
	return result
}

// orderCutMenus ставит стрижки из domain.CutMenuOrder в заданном порядке, остальные после них
func orderCutMenus(items []domain.Menu) []domain.Menu {
	rank := make(map[string]int, len(domain.CutMenuOrder))
	for i, name := range domain.CutMenuOrder {
		rank[name] = i
	}
	position := func(m domain.Menu) int {
		if r, ok := rank[m.Name]; ok {
			return r
		}
		return len(domain.CutMenuOrder)
	}

	result := append([]domain.Menu(nil), items...)
	sort.SliceStable(result, func(i, j int) bool {
		return position(result[i]) < position(result[j])
	})
	return result
}
