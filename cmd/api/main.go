// @title softpet API
// @version 1.0
// @description Registro de mascotas multiusuario: sesiones, ownership y validación.
// @BasePath /
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
