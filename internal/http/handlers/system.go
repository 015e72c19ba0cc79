package handlers

import (
	"net/http"

	intdb "dreamhouse/internal/db"

	"github.com/gin-gonic/gin"
)

func (a API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backend dreamhouse en línea"})
}

func (a API) DBCheck(c *gin.Context) {
	if a.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "base de datos no conectada"})
		return
	}
	if !intdb.HasTable(a.DB, "fact_reservas") {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "la tabla fact_reservas no existe en el esquema"})
		return
	}
	var count int
	if err := a.DB.QueryRow("SELECT COUNT(*) FROM fact_reservas").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo la consulta a la base de datos: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conexión a la base de datos OK", "bookings_in_db": count})
}
