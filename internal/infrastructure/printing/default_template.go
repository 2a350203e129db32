package printing

// defaultInvoiceTemplate is the built-in GST invoice layout.
const defaultInvoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{ .Invoice.InvoiceNumber }}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 13px; color: #222; margin: 24px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #222; padding-bottom: 12px; }
  .seller h1 { margin: 0 0 4px 0; font-size: 20px; }
  .meta { text-align: right; }
  .meta .number { font-size: 16px; font-weight: bold; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 16px; }
  table.items th, table.items td { border: 1px solid #999; padding: 6px 8px; }
  table.items th { background: #f0f0f0; text-align: left; }
  td.amount, th.amount { text-align: right; }
  .totals { margin-top: 12px; width: 40%; margin-left: auto; border-collapse: collapse; }
  .totals td { padding: 4px 8px; }
  .totals tr.grand td { border-top: 2px solid #222; font-weight: bold; }
  .words { margin-top: 12px; font-style: italic; }
  .notes { margin-top: 16px; font-size: 12px; color: #555; }
</style>
</head>
<body>
  <div class="header">
    <div class="seller">
      <h1>{{ if .Seller.BusinessName }}{{ .Seller.BusinessName }}{{ else }}{{ .Seller.Name }}{{ end }}</h1>
      {{ if .Seller.Address }}<div>{{ .Seller.Address }}</div>{{ end }}
      {{ if .Seller.GSTIN }}<div>GSTIN: {{ .Seller.GSTIN }}</div>{{ end }}
      {{ if .Seller.Phone }}<div>Phone: {{ .Seller.Phone }}</div>{{ end }}
    </div>
    <div class="meta">
      <div class="number">{{ .Invoice.InvoiceNumber }}</div>
      <div>Date: {{ formatDate .Invoice.InvoiceDate }}</div>
      {{ if .Invoice.DueDate }}<div>Due: {{ formatDate .Invoice.DueDate }}</div>{{ end }}
    </div>
  </div>

  <p>Billed to: <strong>{{ if .Invoice.CustomerName }}{{ .Invoice.CustomerName }}{{ else }}Walk-in Customer{{ end }}</strong></p>

  <table class="items">
    <thead>
      <tr>
        <th>#</th>
        <th>Item</th>
        <th class="amount">Qty</th>
        <th class="amount">Rate</th>
        <th class="amount">Tax</th>
        <th class="amount">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{ range $i, $item := .Invoice.Items }}
      <tr>
        <td>{{ add1 $i }}</td>
        <td>{{ $item.ProductName }}</td>
        <td class="amount">{{ $item.Quantity }}</td>
        <td class="amount">{{ formatMoney $item.SellingRate }}</td>
        <td class="amount">{{ formatPercent $item.TaxPercent }}</td>
        <td class="amount">{{ formatMoney $item.LineTotal }}</td>
      </tr>
      {{ end }}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="amount">{{ formatMoney .Invoice.Subtotal }}</td></tr>
    {{ if not .Invoice.CGSTTotal.IsZero }}<tr><td>CGST</td><td class="amount">{{ formatMoney .Invoice.CGSTTotal }}</td></tr>{{ end }}
    {{ if not .Invoice.SGSTTotal.IsZero }}<tr><td>SGST</td><td class="amount">{{ formatMoney .Invoice.SGSTTotal }}</td></tr>{{ end }}
    {{ if not .Invoice.IGSTTotal.IsZero }}<tr><td>IGST</td><td class="amount">{{ formatMoney .Invoice.IGSTTotal }}</td></tr>{{ end }}
    <tr class="grand"><td>Total</td><td class="amount">{{ formatMoney .Invoice.TotalAmount }}</td></tr>
    {{ if not .Invoice.ReceivedAmount.IsZero }}
    <tr><td>Received</td><td class="amount">{{ formatMoney .Invoice.ReceivedAmount }}</td></tr>
    <tr><td>Balance</td><td class="amount">{{ formatMoney .Invoice.OutstandingAmount }}</td></tr>
    {{ end }}
  </table>

  <div class="words">{{ amountInWords .Invoice.TotalAmount }}</div>

  {{ if .Invoice.Notes }}<div class="notes">{{ .Invoice.Notes }}</div>{{ end }}
</body>
</html>
`
