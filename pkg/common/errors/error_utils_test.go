package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapGormError(t *testing.T) {
	assert.NoError(t, WrapGormError(nil))
	assert.ErrorIs(t, WrapGormError(gorm.ErrRecordNotFound), ErrNurseNotFound)
	assert.ErrorIs(t, WrapGormError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrDuplicateUser)
	assert.ErrorIs(t, WrapGormError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), ErrDuplicateUser)

	err := WrapGormError(&mysql.MySQLError{Number: 1146, Message: "Table 'app.nurse' doesn't exist"})
	assert.ErrorIs(t, err, ErrStoreInternal)
	assert.Contains(t, err.Error(), "doesn't exist")

	err = WrapGormError(errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrStoreInternal)
	assert.True(t, IsInternal(err))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicateUser))
	assert.True(t, IsDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateError(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateError(&mysql.MySQLError{Number: 1146}))
	assert.False(t, IsDuplicateError(ErrNurseNotFound))
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrInvalidRequest, http.StatusBadRequest},
		{ErrDuplicateUser, http.StatusConflict},
		{ErrNurseNotFound, http.StatusNotFound},
		{fmt.Errorf("query: %w", ErrNurseNotFound), http.StatusNotFound},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: disk full", ErrStoreInternal), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), "error %v", tc.err)
	}
}

func TestHertzWrappersUnwrap(t *testing.T) {
	pub := NewPublic(ErrNurseNotFound, map[string]interface{}{"id": 7})
	assert.ErrorIs(t, pub, ErrNurseNotFound)
	assert.Equal(t, hzte.ErrorTypePublic, pub.Type)

	priv := NewPrivate(ErrStoreInternal, nil)
	assert.ErrorIs(t, priv, ErrStoreInternal)
	assert.Equal(t, hzte.ErrorTypePrivate, priv.Type)
}
