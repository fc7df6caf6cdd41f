package service

import (
	"context"
	"time"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"
)

type PrinterService struct {
	printers repository.PrinterRepository
}

func NewPrinterService(printers repository.PrinterRepository) *PrinterService {
	return &PrinterService{printers: printers}
}

func (s *PrinterService) CreatePrinter(ctx context.Context, req *entity.CreatePrinterRequest) (*entity.Printer, error) {
	now := time.Now().UTC()
	printer := &entity.Printer{
		Name:        req.Name,
		IPAddress:   req.IPAddress,
		Port:        req.Port,
		IsActive:    req.IsActive == nil || *req.IsActive,
		PrinterType: req.PrinterType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.printers.Create(ctx, printer); err != nil {
		return nil, storage("failed to create printer", err)
	}
	return printer, nil
}

func (s *PrinterService) ListPrinters(ctx context.Context, activeOnly bool) ([]entity.Printer, error) {
	printers, err := s.printers.List(ctx, activeOnly)
	if err != nil {
		return nil, storage("failed to list printers", err)
	}
	return printers, nil
}
