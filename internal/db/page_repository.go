package db

import (
	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

type PageRepository struct {
	database *gorm.DB
}

func NewPageRepository(database *gorm.DB) *PageRepository {
	return &PageRepository{database: database}
}

func (repo *PageRepository) FindByID(pageID uint) (models.Page, error) {
	var page models.Page
	if err := repo.database.First(&page, pageID).Error; err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func (repo *PageRepository) FindBySlug(slug string) (models.Page, error) {
	var page models.Page
	if err := repo.database.Where("slug = ?", slug).First(&page).Error; err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func (repo *PageRepository) List() ([]models.Page, error) {
	pages := make([]models.Page, 0)
	if err := repo.database.Order("title").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (repo *PageRepository) Create(page *models.Page) error {
	return repo.database.Create(page).Error
}

func (repo *PageRepository) Save(page *models.Page) error {
	return repo.database.Save(page).Error
}

func (repo *PageRepository) Delete(pageID uint) error {
	return repo.database.Delete(&models.Page{}, pageID).Error
}
