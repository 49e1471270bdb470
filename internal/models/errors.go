package models

import "errors"

var (
	// ErrNotFound запись не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPlan неизвестный или бесплатный идентификатор плана при оформлении.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrPlanLimitExceeded лимит транзакций тарифного плана исчерпан.
	ErrPlanLimitExceeded = errors.New("plan transaction limit exceeded")
	// ErrPaymentNotConfirmed платёжный провайдер не подтвердил оплату.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	// ErrAlreadyPaid счёт уже оплачен.
	ErrAlreadyPaid = errors.New("account already paid")
	// ErrNotSettleable счёт этого типа нельзя оплатить.
	ErrNotSettleable = errors.New("account type cannot be settled")
	// ErrInvalidAmount сумма не разобрана или отрицательна.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidDate дата не в формате 2006-01-02.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUserExists пользователь с таким именем или email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
