package rvapi

import (
	"net/http"
)

// ProductInfo looks a product up by barcode. A nil product with nil error
// means the barcode is unknown.
func (c *Client) ProductInfo(creds *Credentials, barcode string) (*Product, error) {
	resp, err := c.do(http.MethodGet, "/v1/products/"+barcode, creds, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		Product Product `json:"product"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return &body.Product, nil
}

func (c *Client) ProductInfoAdmin(creds *Credentials, barcode string) (*ProductAdmin, error) {
	resp, err := c.do(http.MethodGet, "/v1/admin/products/"+barcode, creds, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(resp, map[int]string{
		http.StatusNotFound: "Product not found",
	}); err != nil {
		return nil, err
	}
	var body struct {
		Product ProductAdmin `json:"product"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return &body.Product, nil
}

// BoxInfo looks a box up by its barcode; nil, nil when absent.
func (c *Client) BoxInfo(creds *Credentials, barcode string) (*Box, error) {
	resp, err := c.do(http.MethodGet, "/v1/admin/boxes/"+barcode, creds, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		Box Box `json:"box"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return &body.Box, nil
}

func (c *Client) SearchProducts(creds *Credentials, query string) ([]Product, error) {
	resp, err := c.do(http.MethodPost, "/v1/products/search", creds, map[string]string{
		"query": query,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		Products []Product `json:"products"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

func (c *Client) SearchBoxes(creds *Credentials, query string) ([]Box, error) {
	resp, err := c.do(http.MethodPost, "/v1/admin/boxes/search", creds, map[string]string{
		"query": query,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		Boxes []Box `json:"boxes"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return body.Boxes, nil
}

// Purchase buys count units of barcode for the principal.
func (c *Client) Purchase(creds *Credentials, barcode string, count int) error {
	resp, err := c.do(http.MethodPost, "/v1/products/"+barcode+"/purchase", creds, map[string]int{
		"count": count,
	})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusNotFound: "No product with barcode " + barcode + " found!",
	})
}

// ReturnProduct undoes the most recent purchase of barcode.
func (c *Client) ReturnProduct(creds *Credentials, barcode string) error {
	resp, err := c.do(http.MethodPost, "/v1/products/"+barcode+"/return", creds, nil)
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

func (c *Client) AddProduct(creds *Credentials, barcode, name string, categoryID, buyPrice, sellPrice, stock int) error {
	resp, err := c.do(http.MethodPost, "/v1/admin/products/", creds, map[string]interface{}{
		"barcode":    barcode,
		"name":       name,
		"categoryId": categoryID,
		"buyPrice":   buyPrice,
		"sellPrice":  sellPrice,
		"stock":      stock,
	})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusConflict: "barcode already in use",
	})
}

func (c *Client) UpdateProduct(creds *Credentials, barcode, name string, categoryID, buyPrice, sellPrice, stock int) error {
	resp, err := c.do(http.MethodPatch, "/v1/admin/products/"+barcode, creds, map[string]interface{}{
		"name":       name,
		"categoryId": categoryID,
		"buyPrice":   buyPrice,
		"sellPrice":  sellPrice,
		"stock":      stock,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

func (c *Client) AddBox(creds *Credentials, boxBarcode, productBarcode string, itemsPerBox int) error {
	resp, err := c.do(http.MethodPost, "/v1/admin/boxes", creds, map[string]interface{}{
		"boxBarcode":     boxBarcode,
		"productBarcode": productBarcode,
		"itemsPerBox":    itemsPerBox,
	})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusConflict: "barcode already in use",
	})
}

func (c *Client) UpdateBox(creds *Credentials, boxBarcode string, itemsPerBox int, productBarcode string) error {
	resp, err := c.do(http.MethodPatch, "/v1/admin/boxes/"+boxBarcode, creds, map[string]interface{}{
		"itemsPerBox":    itemsPerBox,
		"productBarcode": productBarcode,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

// BuyInProduct restocks a product, updating both prices.
func (c *Client) BuyInProduct(creds *Credentials, barcode string, buyPrice, sellPrice, count int) error {
	resp, err := c.do(http.MethodPost, "/v1/admin/products/"+barcode+"/buyIn", creds, map[string]interface{}{
		"buyPrice":  buyPrice,
		"sellPrice": sellPrice,
		"count":     count,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

// BuyInBox restocks by the box; prices are per contained item.
func (c *Client) BuyInBox(creds *Credentials, barcode string, productBuyPrice, productSellPrice, boxCount int) error {
	resp, err := c.do(http.MethodPost, "/v1/admin/boxes/"+barcode+"/buyIn", creds, map[string]interface{}{
		"boxCount":         boxCount,
		"productBuyPrice":  productBuyPrice,
		"productSellPrice": productSellPrice,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

// Margin fetches the configured default sales margin (a fraction, e.g.
// 0.05 for five percent).
func (c *Client) Margin(creds *Credentials) (float64, error) {
	resp, err := c.do(http.MethodGet, "/v1/admin/preferences/globalDefaultMargin", creds, nil)
	if err != nil {
		return 0, err
	}
	if err := classify(resp, nil); err != nil {
		return 0, err
	}
	var body struct {
		Preference struct {
			Key   string  `json:"key"`
			Value float64 `json:"value"`
		} `json:"preference"`
	}
	if err := parse(resp, &body); err != nil {
		return 0, err
	}
	return body.Preference.Value, nil
}

func (c *Client) Categories(creds *Credentials) ([]Category, error) {
	resp, err := c.do(http.MethodGet, "/v1/categories", creds, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		Categories []Category `json:"categories"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return body.Categories, nil
}
