package inmemdb

import (
	"sync"

	"github.com/Oggm2/registroServicio/core/user"
)

type (
	DB struct {
		usuarios *usuarioTable
	}

	usuarioTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
)

func Open() *DB {
	return &DB{
		usuarios: &usuarioTable{table: make(map[string]*user.User)},
	}
}
