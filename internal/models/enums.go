package models

type PurchaseStatus string

const (
	PurchaseStatusDraft     PurchaseStatus = "DRAFT"
	PurchaseStatusOrdered   PurchaseStatus = "ORDERED"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

type ZoneStatus string

const (
	ZoneStatusActive   ZoneStatus = "ACTIVE"
	ZoneStatusInactive ZoneStatus = "INACTIVE"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusInactive EmployeeStatus = "INACTIVE"
	EmployeeStatusOnLeave  EmployeeStatus = "ON_LEAVE"
)

type ShiftStatus string

const (
	ShiftStatusActive   ShiftStatus = "ACTIVE"
	ShiftStatusInactive ShiftStatus = "INACTIVE"
)

type PayrollType string

const (
	PayrollTypeSalary    PayrollType = "SALARY"
	PayrollTypeBonus     PayrollType = "BONUS"
	PayrollTypeAdvance   PayrollType = "ADVANCE"
	PayrollTypeDeduction PayrollType = "DEDUCTION"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeaway OrderType = "TAKEAWAY"
	OrderTypeDelivery OrderType = "DELIVERY"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusIssued    SaleStatus = "ISSUED"
	SaleStatusPaid      SaleStatus = "PAID"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)
