package services

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/shared"
	"github.com/go-pdf/fpdf"
)

// 1x1 transparent PNG, embedded when fetching a card image fails. The PDF
// export is best effort: a broken image link degrades to a blank page
// instead of failing the whole document.
var placeholderPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

var csvHeader = []string{
	"Company Name",
	"Contacts",
	"Address",
	"Machine Requirements",
	"Other Requirements",
	"Remarks",
	"Urgent",
	"Card Image URLs",
}

type ExportService struct {
	companyRepository shared.CompanyRepository
	httpClient        *http.Client
}

func NewExportService(companyRepository shared.CompanyRepository) *ExportService {
	return &ExportService{
		companyRepository: companyRepository,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WriteCSV renders every company as one CSV row.
func (s *ExportService) WriteCSV(w io.Writer) error {
	companies, err := s.companyRepository.GetAllWithRelations()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, company := range companies {
		row := []string{
			company.CompanyName,
			flattenContacts(company.Contacts),
			company.Address,
			strings.Join(company.Requirements, ", "),
			company.OtherRequirements,
			company.Remarks,
			strconv.FormatBool(company.Urgent),
			strings.Join(imageURLs(company), "\n"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePDF renders a detail page per company followed by one page per card
// image, companies ordered by creation date descending.
func (s *ExportService) WritePDF(w io.Writer) error {
	companies, err := s.companyRepository.GetAllWithRelations()
	if err != nil {
		return err
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].CreatedAt.After(companies[j].CreatedAt)
	})

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)

	for _, company := range companies {
		s.writeDetailPage(pdf, company)
		for i, url := range imageURLs(company) {
			s.writeImagePage(pdf, fmt.Sprintf("card-%d-%d", company.ID, i), url)
		}
	}

	return pdf.Output(w)
}

func (s *ExportService) writeDetailPage(pdf *fpdf.Fpdf, company models.Company) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, fmt.Sprintf("Company: %s", company.CompanyName), "", 1, "L", false, 0, "")

	if company.Urgent {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(220, 53, 69)
		pdf.CellFormat(0, 9, "URGENT ACTION REQUIRED", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, "Contact Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, contact := range company.Contacts {
		pdf.CellFormat(0, 6, fmt.Sprintf("Contact %d", i+1), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", contact.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Email: %s", contact.Email), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Mobile: %s", contact.MobileNo), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.MultiCell(0, 6, fmt.Sprintf("Address: %s", company.Address), "", "L", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, "Requirements", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, requirement := range company.Requirements {
		pdf.CellFormat(0, 6, fmt.Sprintf("- %s", requirement), "", 1, "L", false, 0, "")
	}
	if company.OtherRequirements != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Additional: %s", company.OtherRequirements), "", 1, "L", false, 0, "")
	}

	if company.Remarks != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 15)
		pdf.CellFormat(0, 9, "Remarks", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, company.Remarks, "", "L", false)
	}
}

func (s *ExportService) writeImagePage(pdf *fpdf.Fpdf, name, url string) {
	data, imageType := s.fetchImage(url)

	pdf.AddPage()
	options := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(data))
	pdf.ImageOptions(name, 15, 30, 180, 0, false, options, 0, "")
}

// fetchImage downloads the card image bytes. On any failure it logs and
// falls back to the transparent placeholder.
func (s *ExportService) fetchImage(url string) ([]byte, string) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		slog.Warn("could not fetch card image, using placeholder", "url", url, "err", err)
		return placeholderPNG, "PNG"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("could not fetch card image, using placeholder", "url", url, "status", resp.StatusCode)
		return placeholderPNG, "PNG"
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("could not read card image, using placeholder", "url", url, "err", err)
		return placeholderPNG, "PNG"
	}

	return data, imageTypeOf(data)
}

func imageTypeOf(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	default:
		return "PNG"
	}
}

func flattenContacts(contacts []models.Contact) string {
	parts := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		parts = append(parts, fmt.Sprintf("%s <%s> %s", contact.Name, contact.Email, contact.MobileNo))
	}
	return strings.Join(parts, "; ")
}

func imageURLs(company models.Company) []string {
	if company.CardImage == nil {
		return nil
	}
	return company.CardImage.ImageURL
}
