package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/kcouncil/portal/internal/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gorm.io/gorm"
)

// Spreadsheet export column headers. Cell phone wins over residence phone.
const (
	importColumnMembershipNumber = "Membership Number"
	importColumnFirstName        = "First Name"
	importColumnLastName         = "Last Name"
	importColumnPrimaryEmail     = "Primary Email"
	importColumnCellPhone        = "Cell Phone"
	importColumnResidencePhone   = "Residence Phone"
)

// ImportService creates users in bulk from a CSV spreadsheet export. The
// whole file is processed inside one transaction: any error discards every
// row, including the ones already inserted.
type ImportService struct {
	database *gorm.DB
}

func NewImportService(database *gorm.DB) *ImportService {
	return &ImportService{database: database}
}

// ImportCSV reads the upload and returns how many users were created.
// Rows are skipped silently when the membership number is missing or
// already taken, or when a non-blank email belongs to another user.
func (service *ImportService) ImportCSV(input io.Reader) (int, error) {
	created := 0
	err := service.database.Transaction(func(tx *gorm.DB) error {
		// Excel exports often carry a UTF-8 BOM; strip it when present.
		reader := csv.NewReader(transform.NewReader(input, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		columns := make(map[string]int, len(header))
		for index, name := range header {
			columns[strings.TrimSpace(name)] = index
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			row := func(column string) string {
				index, ok := columns[column]
				if !ok || index >= len(record) {
					return ""
				}
				return strings.TrimSpace(record[index])
			}

			membershipNumber := row(importColumnMembershipNumber)
			if membershipNumber == "" {
				continue
			}

			var existing int64
			if err := tx.Model(&models.User{}).
				Where("membership_number = ?", membershipNumber).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			var email *string
			if value := row(importColumnPrimaryEmail); value != "" {
				var taken int64
				if err := tx.Model(&models.User{}).
					Where("email = ?", value).
					Count(&taken).Error; err != nil {
					return err
				}
				if taken > 0 {
					continue
				}
				email = &value
			}

			phoneNumber := row(importColumnCellPhone)
			if phoneNumber == "" {
				phoneNumber = row(importColumnResidencePhone)
			}

			user := models.User{
				MembershipNumber: membershipNumber,
				FirstName:        row(importColumnFirstName),
				LastName:         row(importColumnLastName),
				Email:            email,
				PhoneNumber:      phoneNumber,
				IsAdmin:          false,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			hash, err := HashPassword(membershipNumber)
			if err != nil {
				return err
			}
			if err := tx.Create(&models.Credential{
				MembershipNumber: membershipNumber,
				PasswordHash:     hash,
			}).Error; err != nil {
				return err
			}

			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
