package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/covid-tracker/pipeline"
)

func (s *Server) regions(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"regions": p.Regions(),
	})
}

func (s *Server) world(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"series": p.World(),
	})
}

func (s *Server) region(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}

	view, ok := recompute(c, p, c.Param("region"))
	if !ok {
		return
	}

	var growthError interface{}
	if view.GrowthErr != nil {
		growthError = view.GrowthErr.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"region":       view.Region,
		"series":       view.Series,
		"growth":       view.Growth,
		"growth_error": growthError,
	})
}

func recompute(c *gin.Context, p *pipeline.Pipeline, region string) (pipeline.RegionView, bool) {
	view, err := p.Recompute(region)
	if err == pipeline.ErrUnknownRegion {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownRegion)
		return view, false
	}
	if nil != err {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return view, false
	}
	return view, true
}
