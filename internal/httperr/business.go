package httperr

import "errors"

// BusinessError é o erro de regra de negócio que sobe das camadas de
// domínio e usecase carregando só o código; o texto e o status HTTP
// são decididos no handler.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness diz se err é um erro de negócio com o código pedido.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
